// Package radclient is the one-shot UDP transport collaborator: it takes
// an already-encoded packet and fires it at a destination, with no
// response read, no retry and no request/response matching (those belong
// to a different system).
package radclient

import (
	"net"
	"strings"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// multicastTTL is set on the outbound unicast socket unconditionally,
// preserved from original_source/libradi/radius.py RadiusMessage.send as a
// harmless historical quirk: it has no effect on unicast traffic.
const multicastTTL = 20

// Send transmits packet to destIP:port over UDP, choosing IPv6 or IPv4
// depending on whether destIP contains a ':'. The socket is closed before
// returning; no response is read.
func Send(destIP string, port int, packet []byte) error {
	if strings.Contains(destIP, ":") {
		return sendV6(destIP, port, packet)
	}
	return sendV4(destIP, port, packet)
}

func sendV4(destIP string, port int, packet []byte) error {
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	pc := ipv4.NewPacketConn(conn)
	_ = pc.SetMulticastTTL(multicastTTL)

	dest := &net.UDPAddr{IP: net.ParseIP(destIP), Port: port}
	_, err = conn.WriteToUDP(packet, dest)
	return err
}

func sendV6(destIP string, port int, packet []byte) error {
	conn, err := net.ListenUDP("udp6", nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	pc := ipv6.NewPacketConn(conn)
	_ = pc.SetMulticastHopLimit(multicastTTL)

	dest := &net.UDPAddr{IP: net.ParseIP(destIP), Port: port}
	_, err = conn.WriteToUDP(packet, dest)
	return err
}
