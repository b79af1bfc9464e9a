package colorconv

import (
	"math"
	"testing"
)

func nearlyEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

var tableCases = []struct {
	name    string
	R, G, B float32
	H, S, V float32
}{
	{"black", 0, 0, 0, 0, 0, 0},
	{"white", 1, 1, 1, 0, 0, 1},
	{"mid gray", 0.5, 0.5, 0.5, 0, 0, 0.5},
	{"red", 1, 0, 0, 0, 1, 1},
	{"yellow", 1, 1, 0, 1.0 / 6, 1, 1},
	{"green", 0, 1, 0, 2.0 / 6, 1, 1},
	{"cyan", 0, 1, 1, 3.0 / 6, 1, 1},
	{"blue", 0, 0, 1, 4.0 / 6, 1, 1},
	{"magenta", 1, 0, 1, 5.0 / 6, 1, 1},
	{"dark rose", 0.5, 0.25, 0.375, 0.916666667, 0.5, 0.5},
}

func TestRGBToHSV_TableDriven(t *testing.T) {
	const eps = 1e-6
	for _, tc := range tableCases {
		t.Run(tc.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tc.R, tc.G, tc.B)
			if !nearlyEqual(h, tc.H, eps) || !nearlyEqual(s, tc.S, eps) || !nearlyEqual(v, tc.V, eps) {
				t.Fatalf("RGBToHSV(%v, %v, %v) = (%.9f, %.9f, %.9f) want (%.9f, %.9f, %.9f)",
					tc.R, tc.G, tc.B, h, s, v, tc.H, tc.S, tc.V)
			}
		})
	}
}

func TestHSVToRGB_Roundtrip_TableDriven(t *testing.T) {
	const eps = 1e-6
	for _, tc := range tableCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := HSVToRGB(RGBToHSV(tc.R, tc.G, tc.B))
			if !nearlyEqual(r, tc.R, eps) || !nearlyEqual(g, tc.G, eps) || !nearlyEqual(b, tc.B, eps) {
				t.Fatalf("roundtrip mismatch: in=(%v, %v, %v) out=(%.9f, %.9f, %.9f)", tc.R, tc.G, tc.B, r, g, b)
			}
		})
	}
}

func TestHueWraps(t *testing.T) {
	r0, g0, b0 := HSVToRGB(0.25, 0.8, 0.6)
	r1, g1, b1 := HSVToRGB(1.25, 0.8, 0.6)
	r2, g2, b2 := HSVToRGB(-0.75, 0.8, 0.6)
	if r0 != r1 || g0 != g1 || b0 != b1 {
		t.Fatalf("hue 1.25 should equal hue 0.25: (%v,%v,%v) != (%v,%v,%v)", r1, g1, b1, r0, g0, b0)
	}
	if !nearlyEqual(r0, r2, 1e-6) || !nearlyEqual(g0, g2, 1e-6) || !nearlyEqual(b0, b2, 1e-6) {
		t.Fatalf("hue -0.75 should equal hue 0.25: (%v,%v,%v) != (%v,%v,%v)", r2, g2, b2, r0, g0, b0)
	}
	r, g, b := HSVToRGB(1, 1, 1)
	if r != 1 || g != 0 || b != 0 {
		t.Fatalf("hue 1 should be red, got (%v, %v, %v)", r, g, b)
	}
}

func TestHueFromAngle(t *testing.T) {
	cases := []struct {
		theta float64
		want  float32
	}{
		{-math.Pi, 0},
		{-math.Pi / 2, 0.25},
		{0, 0.5},
		{math.Pi / 2, 0.75},
		{math.Pi, 0},
	}
	for _, tc := range cases {
		if got := HueFromAngle(tc.theta); !nearlyEqual(got, tc.want, 1e-6) {
			t.Fatalf("HueFromAngle(%v) = %v want %v", tc.theta, got, tc.want)
		}
	}
}

func TestLuma(t *testing.T) {
	if got := Luma(1, 1, 1); !nearlyEqual(got, 1, 1e-6) {
		t.Fatalf("luma of white is %v", got)
	}
	if got := Luma(1, 0, 0); !nearlyEqual(got, LumaR, 1e-6) {
		t.Fatalf("luma of red is %v", got)
	}
}
