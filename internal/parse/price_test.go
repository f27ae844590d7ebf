package parse

import "testing"

func TestExtractPrice_Found(t *testing.T) {
	got, ok := ExtractPrice("Prix: CHF 12.50.-")
	if !ok {
		t.Fatalf("expected a price match")
	}
	if got != "CHF 12.50" {
		t.Fatalf("expected 'CHF 12.50', got %q", got)
	}
}

func TestExtractPrice_WholeAmount(t *testing.T) {
	got, ok := ExtractPrice("CHF 15")
	if !ok || got != "CHF 15" {
		t.Fatalf("expected 'CHF 15', got %q (ok=%v)", got, ok)
	}
}

func TestExtractPrice_NotFound(t *testing.T) {
	got, ok := ExtractPrice("Menu du jour sans prix")
	if ok {
		t.Fatalf("did not expect a match")
	}
	if got != PriceUnknown {
		t.Fatalf("expected sentinel %q, got %q", PriceUnknown, got)
	}
}

func TestStripPrice(t *testing.T) {
	got := StripPrice("Emincé de poulet CHF 14.90 au curry")
	if got != "Emincé de poulet au curry" {
		t.Fatalf("unexpected strip result: %q", got)
	}
	got = StripPrice("Salade mêlée")
	if got != "Salade mêlée" {
		t.Fatalf("expected text without price unchanged, got %q", got)
	}
}
