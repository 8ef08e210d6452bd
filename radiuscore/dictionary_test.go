package radiuscore

import (
	"testing"

	"github.com/go-test/deep"
)

func TestLoadDictionary(t *testing.T) {
	dict, err := LoadDictionary("testdata", "dictionary")
	if err != nil {
		t.Fatalf("error loading dictionary: %v", err)
	}

	userName, err := dict.FindAttribute("user-name")
	if err != nil {
		t.Fatalf("User-Name not found: %v", err)
	}
	if userName.Code != 1 {
		t.Errorf("User-Name code was %d, wanted 1", userName.Code)
	}
	if userName.WireType != TypeString {
		t.Errorf("User-Name type was %v, wanted string", userName.WireType)
	}
	if userName.Vendor != nil {
		t.Errorf("User-Name has an unexpected vendor")
	}
}

func TestLoadDictionaryVendorScoping(t *testing.T) {
	dict, err := LoadDictionary("testdata", "dictionary")
	if err != nil {
		t.Fatalf("error loading dictionary: %v", err)
	}

	imsi, err := dict.FindAttribute("3gpp-imsi")
	if err != nil {
		t.Fatalf("3GPP-IMSI not found: %v", err)
	}
	if imsi.Vendor == nil {
		t.Fatalf("3GPP-IMSI has no vendor")
	}
	if imsi.Vendor.ID != 10415 {
		t.Errorf("3GPP-IMSI vendor id was %d, wanted 10415", imsi.Vendor.ID)
	}

	// dictionary.extra is $INCLUDEd from inside 3GPP's BEGIN-VENDOR/END-VENDOR
	// block; its own attributes must not inherit that scope.
	serviceType, err := dict.FindAttribute("service-type")
	if err != nil {
		t.Fatalf("Service-Type (from $INCLUDE) not found: %v", err)
	}
	if serviceType.Vendor != nil {
		t.Errorf("Service-Type should not have inherited the 3GPP vendor scope from its including file")
	}

	ratType, err := dict.FindAttribute("3gpp-rat-type")
	if err != nil {
		t.Fatalf("3GPP-RAT-Type (declared after the nested $INCLUDE) not found: %v", err)
	}
	if ratType.Vendor == nil || ratType.Vendor.ID != 10415 {
		t.Errorf("3GPP-RAT-Type should still carry the 3GPP vendor scope after the nested $INCLUDE returns")
	}
}

func TestLoadDictionaryEnumeratedValues(t *testing.T) {
	dict, err := LoadDictionary("testdata", "dictionary")
	if err != nil {
		t.Fatalf("error loading dictionary: %v", err)
	}

	acctStatus, err := dict.FindAttribute("acct-status-type")
	if err != nil {
		t.Fatalf("Acct-Status-Type not found: %v", err)
	}
	if len(acctStatus.EnumeratedValues) != 3 {
		t.Fatalf("Acct-Status-Type had %d enumerated values, wanted 3", len(acctStatus.EnumeratedValues))
	}

	startValue, err := ParseNumeric("1", 4, 1)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	found := false
	for _, ev := range acctStatus.EnumeratedValues {
		if ev.Label == "Start" {
			found = true
			if diff := deep.Equal(ev.Value, WireValue(startValue)); diff != nil {
				t.Errorf("Start value mismatch: %v", diff)
			}
		}
	}
	if !found {
		t.Errorf("Start label not found among enumerated values")
	}
}

func TestLoadDictionaryIncludeCycleTerminates(t *testing.T) {
	// testdata/dictionary.extra re-includes testdata/dictionary; the loader
	// must dedupe by canonicalized path instead of recursing forever.
	if _, err := LoadDictionary("testdata", "dictionary"); err != nil {
		t.Fatalf("include cycle was not handled: %v", err)
	}
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	if _, err := LoadDictionary("testdata", "does-not-exist"); err == nil {
		t.Errorf("missing dictionary file did not produce an error")
	}
}
