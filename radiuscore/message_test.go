package radiuscore_test

import (
	"encoding/hex"

	"github.com/mrodriguez-lopez/radacct/radiuscore"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Message", func() {
	var dict *radiuscore.Dictionary

	BeforeEach(func() {
		var err error
		dict, err = radiuscore.LoadDictionary("testdata", "dictionary")
		Expect(err).NotTo(HaveOccurred())
	})

	addAVP := func(msg *radiuscore.Message, name, literal string) {
		avp, err := radiuscore.NewAVP(dict, name, literal)
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.AddAVP(avp)).To(Succeed())
	}

	buildReferenceMessage := func() *radiuscore.Message {
		msg := radiuscore.NewMessage("secret", radiuscore.AccountingRequest)
		msg.Identifier = 0xf5

		addAVP(msg, "user-name", "johndoe")
		addAVP(msg, "acct-status-type", "1")
		addAVP(msg, "nas-ip-address", "127.0.0.1")
		addAVP(msg, "framed-ip-address", "10.0.0.1")
		addAVP(msg, "framed-ip-netmask", "255.255.255.255")
		addAVP(msg, "framed-protocol", "1")
		addAVP(msg, "calling-station-id", "00441234987654")
		addAVP(msg, "called-station-id", "web.apn")
		addAVP(msg, "3gpp-imsi", "12345678901234")
		addAVP(msg, "3gpp-imeisv", "3456789012345678901234567890")
		return msg
	}

	When("encoding the full accounting-request scenario", func() {
		It("matches the reference byte stream exactly", func() {
			encoded, err := buildReferenceMessage().Encode()
			Expect(err).NotTo(HaveOccurred())

			Expect(encoded).To(HaveLen(142))
			Expect(encoded[0]).To(Equal(byte(4)))
			Expect(encoded[1]).To(Equal(byte(0xf5)))
			Expect(encoded[2:4]).To(Equal([]byte{0x00, 0x8e}))
			Expect(hex.EncodeToString(encoded[4:20])).To(Equal("cf00f8a8355d79ff820361f2567a9e95"))

			want := "04f5008ecf00f8a8355d79ff820361f2567a9e95" +
				"01096a6f686e646f65" +
				"280600000001" +
				"0406" + "7f000001" +
				"0806" + "0a000001" +
				"0906" + "ffffffff" +
				"0706" + "00000001" +
				"1f10" + "3030343431323334393837363534" +
				"1e09" + "7765622e61706e" +
				"1a16" + "000028af" + "01103132333435363738393031323334" +
				"1a24" + "000028af" + "141e33343536373839303132333435363738393031323334353637383930"
			Expect(hex.EncodeToString(encoded)).To(Equal(want))
		})
	})

	When("an AVP exceeds the one-byte length field", func() {
		It("returns LengthOverflow instead of silently truncating", func() {
			msg := radiuscore.NewMessage("secret", radiuscore.AccountingRequest)
			longLiteral := make([]byte, 300)
			for i := range longLiteral {
				longLiteral[i] = 'a'
			}
			avp, err := radiuscore.NewAVP(dict, "user-name", string(longLiteral))
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.AddAVP(avp)).To(MatchError(ContainSubstring("exceeds maximum")))
		})
	})

	When("building the same message twice", func() {
		It("produces byte-identical authenticators", func() {
			first, err := buildReferenceMessage().Encode()
			Expect(err).NotTo(HaveOccurred())
			second, err := buildReferenceMessage().Encode()
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(second))
		})
	})
})
