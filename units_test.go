package htmlslide

import "testing"

func TestPxConversions(t *testing.T) {
	if got := PxToInch(96); got != 1 {
		t.Errorf("PxToInch(96) = %v, want 1", got)
	}
	if got := PxToPoint(96); got != 72 {
		t.Errorf("PxToPoint(96) = %v, want 72", got)
	}
}

func TestIsSingleWeightFont(t *testing.T) {
	if !IsSingleWeightFont("Impact") {
		t.Error("expected Impact to be single-weight")
	}
	if !IsSingleWeightFont(`"impact"`) {
		t.Error("expected quoted impact to be single-weight")
	}
	if IsSingleWeightFont("Arial") {
		t.Error("expected Arial not to be single-weight")
	}
}

func TestParseColorRGB(t *testing.T) {
	hex, transparency, err := ParseColor("rgb(18, 52, 86)", false)
	if err != nil {
		t.Fatal(err)
	}
	if hex != "123456" {
		t.Errorf("hex = %q, want 123456", hex)
	}
	if transparency != 0 {
		t.Errorf("transparency = %d, want 0 (no explicit alpha)", transparency)
	}
}

func TestParseColorRGBAWithAlpha(t *testing.T) {
	hex, transparency, err := ParseColor("rgba(12, 34, 56, 0.5)", false)
	if err != nil {
		t.Fatal(err)
	}
	if hex != "0C2238" {
		t.Errorf("hex = %q, want 0C2238", hex)
	}
	if transparency != 50 {
		t.Errorf("transparency = %d, want 50", transparency)
	}
}

func TestParseColorTransparentBackground(t *testing.T) {
	hex, _, err := ParseColor("transparent", true)
	if err != nil {
		t.Fatal(err)
	}
	if hex != "FFFFFF" {
		t.Errorf("hex = %q, want FFFFFF", hex)
	}
}

func TestParseColorTransparentText(t *testing.T) {
	hex, _, err := ParseColor("rgba(0, 0, 0, 0)", false)
	if err != nil {
		t.Fatal(err)
	}
	if !IsNoColor(hex) {
		t.Errorf("expected no-color marker, got %q", hex)
	}
}

func TestApplyTextTransform(t *testing.T) {
	if got := ApplyTextTransform("hello world", TransformUppercase); got != "HELLO WORLD" {
		t.Errorf("uppercase got %q", got)
	}
	if got := ApplyTextTransform("HELLO", TransformLowercase); got != "hello" {
		t.Errorf("lowercase got %q", got)
	}
	if got := ApplyTextTransform("hello world", TransformCapitalize); got != "Hello World" {
		t.Errorf("capitalize got %q", got)
	}
}
