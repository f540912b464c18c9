package signal

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseType_Recognized(t *testing.T) {
	for _, name := range []string{"P", "U", "A", "Q", "PPG"} {
		got, err := ParseType(name)
		if err != nil {
			t.Errorf("ParseType(%q) failed: %v", name, err)
		}
		if string(got) != name {
			t.Errorf("ParseType(%q) = %q", name, got)
		}
	}
}

func TestParseType_Unknown(t *testing.T) {
	_, err := ParseType("ECG")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Expected ErrUnknownType, got %v", err)
	}

	var typeErr *UnknownTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Expected *UnknownTypeError, got %T", err)
	}
	if typeErr.Name != "ECG" {
		t.Errorf("Expected offending name ECG, got %q", typeErr.Name)
	}
}

func TestParseTypeList_OrderAndDedup(t *testing.T) {
	got, err := ParseTypeList("U, P,U,PPG")
	if err != nil {
		t.Fatalf("ParseTypeList failed: %v", err)
	}
	want := []Type{Velocity, Pressure, PPG}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseName(t *testing.T) {
	key, err := ParseName("Radial_U")
	if err != nil {
		t.Fatalf("ParseName failed: %v", err)
	}
	if key.Prefix != "Radial" || key.Type != Velocity {
		t.Errorf("Expected Radial/U, got %+v", key)
	}
	if key.Name() != "Radial_U" {
		t.Errorf("Round trip mismatch: %q", key.Name())
	}
	if key.Site() != "Left Radial Artery" {
		t.Errorf("Expected site 'Left Radial Artery', got %q", key.Site())
	}
}

func TestParseName_BadPrefix(t *testing.T) {
	if _, err := ParseName("Nonsense_U"); err == nil {
		t.Error("Expected error for unknown prefix")
	}
	if _, err := ParseName("Radial"); err == nil {
		t.Error("Expected error for missing type suffix")
	}
	if _, err := ParseName("Radial_X"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType for bad suffix, got %v", err)
	}
}

func TestSiteForPrefix_V1Fallback(t *testing.T) {
	// Carotid only exists in the 2019 table
	site, ok := SiteForPrefix("Carotid")
	if !ok {
		t.Fatal("Expected v1 fallback for Carotid prefix")
	}
	if site != "Left Common Carotid Artery" {
		t.Errorf("Expected 'Left Common Carotid Artery', got %q", site)
	}

	// LCCA maps the same site in the 2024 table
	site, ok = SiteForPrefix("LCCA")
	if !ok || site != "Left Common Carotid Artery" {
		t.Errorf("Expected v2 mapping for LCCA, got %q (%v)", site, ok)
	}
}

func TestParseSiteList_NamesAndPrefixes(t *testing.T) {
	got, err := ParseSiteList("LEIA,Radial, Left Femoral Artery")
	if err != nil {
		t.Fatalf("ParseSiteList failed: %v", err)
	}
	want := []string{"CommonIliac", "Radial", "Femoral"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseSiteList_Unknown(t *testing.T) {
	_, err := ParseSiteList("Radial,NoSuchSite")
	var siteErr *UnknownSiteError
	if !errors.As(err, &siteErr) {
		t.Fatalf("Expected *UnknownSiteError, got %v", err)
	}
	if siteErr.Name != "NoSuchSite" {
		t.Errorf("Expected offending name NoSuchSite, got %q", siteErr.Name)
	}
}

func TestAliasNames_MCAFallback(t *testing.T) {
	key := Key{Prefix: "LMCA", Type: Pressure}
	got := AliasNames(key)
	want := []string{"LMCA_P", "MCA_P"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	key = Key{Prefix: "Radial", Type: Velocity}
	got = AliasNames(key)
	if !reflect.DeepEqual(got, []string{"Radial_U"}) {
		t.Errorf("Expected no alias for Radial_U, got %v", got)
	}
}
