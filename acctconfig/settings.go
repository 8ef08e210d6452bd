// Package acctconfig is the CLI/config collaborator (spec component C6):
// it supplies a validated Settings struct and assembles the ordered AVP
// sequence for one accounting event.
package acctconfig

import (
	"strconv"
	"strings"
	"time"

	"github.com/mrodriguez-lopez/radacct/radiuscore"
)

// Action is one of the four session events a request can carry.
type Action int

const (
	Start Action = iota
	Stop
	Interim
	Restart
)

func (a Action) acctStatusTypeLiteral() string {
	switch a {
	case Start:
		return "1"
	case Stop:
		return "2"
	case Interim:
		return "3"
	default:
		return "1"
	}
}

// ExtraAVP is one user-supplied "-a name=value" pair, preserved in order.
type ExtraAVP struct {
	Name    string
	Literal string
}

// Settings mirrors original_source/radi.py's Config: every field the
// assembler needs for one accounting event (spec 4.6).
type Settings struct {
	DictPath     string
	DictFile     string
	RadiusDest   string
	RadiusPort   int
	RadiusSecret string
	Username     string
	IMSI         string
	IMEI         string
	FramedIP     string
	FramedMask   int // 0 means "unset"; defaults applied at build time
	CallingID    string
	CalledID     string
	SubsLocInfo  string // opaque literal, parsed by the octets/string codec
	Delay        time.Duration
	Action       Action
	ExtraAVPs    []ExtraAVP
}

// Default mirrors Config.__init__ in original_source/radi.py.
func Default() Settings {
	return Settings{
		DictPath:     "dict",
		DictFile:     "dictionary",
		RadiusDest:   "127.0.0.1",
		RadiusPort:   1813,
		RadiusSecret: "secret",
		Username:     "johndoe",
		IMSI:         "12345678901234",
		IMEI:         "3456789012345678901234567890",
		FramedIP:     "10.0.0.1",
		CallingID:    "00441234987654",
		CalledID:     "web.apn",
		SubsLocInfo:  "0x01620210ffffffff",
		Delay:        1 * time.Second,
		Action:       Start,
	}
}

func isIPv6(literal string) bool {
	return strings.Contains(literal, ":")
}

// BuildMessage assembles the AVPs for one session event in the exact order
// spec 4.6 specifies, returning a Message ready to Encode. action overrides
// s.Action so Restart can drive the Stop-then-Start pair with one Settings
// value.
func BuildMessage(dict *radiuscore.Dictionary, s Settings, action Action) (*radiuscore.Message, error) {
	msg := radiuscore.NewMessage(s.RadiusSecret, radiuscore.AccountingRequest)

	type avpSpec struct {
		name    string
		literal string
	}

	framedMask := s.FramedMask
	specs := []avpSpec{
		{"User-Name", s.Username},
		{"Acct-Status-Type", action.acctStatusTypeLiteral()},
	}

	if isIPv6(s.RadiusDest) {
		specs = append(specs, avpSpec{"NAS-IPv6-Address", s.RadiusDest})
	} else {
		specs = append(specs, avpSpec{"NAS-IP-Address", s.RadiusDest})
	}

	if isIPv6(s.FramedIP) {
		if framedMask == 0 {
			framedMask = 128
		}
		specs = append(specs, avpSpec{"Framed-IPv6-Prefix", s.FramedIP + "/" + strconv.Itoa(framedMask)})
	} else {
		if framedMask == 0 {
			framedMask = 32
		}
		mask, err := radiuscore.BitsToIPv4Mask(framedMask)
		if err != nil {
			return nil, err
		}
		specs = append(specs,
			avpSpec{"Framed-IP-Address", s.FramedIP},
			avpSpec{"Framed-IP-Netmask", mask},
		)
	}

	specs = append(specs,
		avpSpec{"Framed-Protocol", "1"},
		avpSpec{"Calling-Station-Id", s.CallingID},
		avpSpec{"Called-Station-Id", s.CalledID},
	)

	if s.SubsLocInfo != "" {
		specs = append(specs, avpSpec{"3GPP-Location-Info", s.SubsLocInfo})
	}

	specs = append(specs,
		avpSpec{"3GPP-IMSI", s.IMSI},
		avpSpec{"3GPP-IMEISV", s.IMEI},
	)

	for _, extra := range s.ExtraAVPs {
		specs = append(specs, avpSpec{extra.Name, extra.Literal})
	}

	for _, sp := range specs {
		avp, err := radiuscore.NewAVP(dict, sp.name, sp.literal)
		if err != nil {
			return nil, err
		}
		if err := msg.AddAVP(avp); err != nil {
			return nil, err
		}
	}

	return msg, nil
}
