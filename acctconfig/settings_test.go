package acctconfig

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrodriguez-lopez/radacct/radiuscore"
)

func testDictionary(t *testing.T) *radiuscore.Dictionary {
	t.Helper()
	dict, err := radiuscore.LoadDictionary("../radiuscore/testdata", "dictionary")
	if err != nil {
		t.Fatalf("error loading dictionary: %v", err)
	}
	return dict
}

func TestBuildMessageMatchesReferenceSequence(t *testing.T) {
	// With SubsLocInfo cleared, the assembled AVP set matches the reference
	// scenario byte-for-byte (spec 8 scenario 5).
	dict := testDictionary(t)
	s := Default()
	s.SubsLocInfo = ""

	msg, err := BuildMessage(dict, s, Start)
	if err != nil {
		t.Fatalf("error building message: %v", err)
	}
	msg.Identifier = 0xf5

	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("error encoding message: %v", err)
	}

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

	got := hex.EncodeToString(encoded)
	if got != want {
		t.Errorf("encoded\n%s\nwanted\n%s", got, want)
	}
}

func TestBuildMessageOrdering(t *testing.T) {
	dict := testDictionary(t)
	s := Default()

	msg, err := BuildMessage(dict, s, Start)
	if err != nil {
		t.Fatalf("error building message: %v", err)
	}

	// The three 3GPP attributes belong to a vendor, so their outer Def is
	// the Vendor-Specific wrapper; the real attribute name shows up on the
	// single sub-AVP instead (spec 4.3).
	wantOrder := []string{
		"User-Name", "Acct-Status-Type", "NAS-IP-Address",
		"Framed-IP-Address", "Framed-IP-Netmask", "Framed-Protocol",
		"Calling-Station-Id", "Called-Station-Id", "Vendor-Specific",
		"Vendor-Specific", "Vendor-Specific",
	}
	wantSubName := map[int]string{8: "3GPP-Location-Info", 9: "3GPP-IMSI", 10: "3GPP-IMEISV"}
	if len(msg.AVPs) != len(wantOrder) {
		t.Fatalf("got %d AVPs, wanted %d", len(msg.AVPs), len(wantOrder))
	}
	for i, name := range wantOrder {
		if msg.AVPs[i].Def.Name != name {
			t.Errorf("AVP %d was %s, wanted %s", i, msg.AVPs[i].Def.Name, name)
		}
		if subName, ok := wantSubName[i]; ok {
			if len(msg.AVPs[i].SubAVPs) != 1 || msg.AVPs[i].SubAVPs[0].Def.Name != subName {
				t.Errorf("AVP %d sub-attribute was not %s", i, subName)
			}
		}
	}

	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("error encoding message: %v", err)
	}
	if int(encoded[2])<<8|int(encoded[3]) != len(encoded) {
		t.Errorf("length field did not match encoded size")
	}
}

func TestBuildMessageRejectsExtraAVPUnknownName(t *testing.T) {
	dict := testDictionary(t)
	s := Default()
	s.ExtraAVPs = []ExtraAVP{{Name: "Not-An-Attribute", Literal: "x"}}

	if _, err := BuildMessage(dict, s, Start); err == nil {
		t.Errorf("unknown extra AVP name was accepted")
	}
}

func TestBuildMessageAppliesExtraAVPsInOrder(t *testing.T) {
	dict := testDictionary(t)
	s := Default()
	s.ExtraAVPs = []ExtraAVP{
		{Name: "Acct-Status-Type", Literal: "2"},
	}

	msg, err := BuildMessage(dict, s, Start)
	if err != nil {
		t.Fatalf("error building message: %v", err)
	}
	// the extra is appended after the fixed sequence, so the second
	// Acct-Status-Type AVP (not the first) must carry the overridden value.
	last := msg.AVPs[len(msg.AVPs)-1]
	if last.Def.Name != "Acct-Status-Type" {
		t.Fatalf("last AVP was %s, wanted Acct-Status-Type", last.Def.Name)
	}
	stop, err := radiuscore.ParseNumeric("2", 4, 1)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	if !radiuscore.Equal(last.Value, stop) {
		t.Errorf("last Acct-Status-Type value was %v, wanted 2", last.Value)
	}
}

func TestCachePersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := Default()
	s.Username = "alice"
	s.ExtraAVPs = []ExtraAVP{{Name: "Calling-Station-Id", Literal: "123"}}

	if err := SaveCached(dir, s); err != nil {
		t.Fatalf("error saving cache: %v", err)
	}

	loaded, found, err := LoadCached(dir)
	if err != nil {
		t.Fatalf("error loading cache: %v", err)
	}
	if !found {
		t.Fatalf("cache was not found after saving")
	}
	if loaded.Username != "alice" {
		t.Errorf("username was %q, wanted alice", loaded.Username)
	}
	if len(loaded.ExtraAVPs) != 1 || loaded.ExtraAVPs[0].Name != "Calling-Station-Id" {
		t.Errorf("extra AVPs did not round-trip: %+v", loaded.ExtraAVPs)
	}
}

func TestCacheMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	_, found, err := LoadCached(dir)
	if err != nil {
		t.Fatalf("missing cache produced an error: %v", err)
	}
	if found {
		t.Errorf("found was true with no cache file present")
	}
}

func TestCacheFileIsHidden(t *testing.T) {
	dir := t.TempDir()
	if err := SaveCached(dir, Default()); err != nil {
		t.Fatalf("error saving cache: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("error reading dir: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.Name() == cacheFileName {
			found = true
		}
	}
	if !found {
		t.Errorf("cache file %s not found in %s", cacheFileName, filepath.Join(dir))
	}
}
