package launch

import "testing"

func TestParseGeometry_SizeAndAnchoredOffsets(t *testing.T) {
	g, err := ParseGeometry("150x30-250+0")
	if err != nil {
		t.Fatal(err)
	}
	if !g.HasSize || g.Width != 150 || g.Height != 30 {
		t.Errorf("size = %v %dx%d, want 150x30", g.HasSize, g.Width, g.Height)
	}
	if !g.HasPosition {
		t.Fatal("position should be present")
	}
	if g.X != -250 || !g.XFromRight {
		t.Errorf("x = %d fromRight=%v, want -250 anchored right", g.X, g.XFromRight)
	}
	if g.Y != 0 || g.YFromBottom {
		t.Errorf("y = %d fromBottom=%v, want 0 anchored top", g.Y, g.YFromBottom)
	}
}

func TestParseGeometry_SizeOnly(t *testing.T) {
	g, err := ParseGeometry("800x600")
	if err != nil {
		t.Fatal(err)
	}
	if !g.HasSize || g.Width != 800 || g.Height != 600 {
		t.Errorf("got %+v, want 800x600", g)
	}
	if g.HasPosition {
		t.Error("position should be absent")
	}
}

func TestParseGeometry_PositionOnly(t *testing.T) {
	g, err := ParseGeometry("+10-20")
	if err != nil {
		t.Fatal(err)
	}
	if g.HasSize {
		t.Error("size should be absent")
	}
	if g.X != 10 || g.XFromRight {
		t.Errorf("x = %d fromRight=%v, want 10 anchored left", g.X, g.XFromRight)
	}
	if g.Y != -20 || !g.YFromBottom {
		t.Errorf("y = %d fromBottom=%v, want -20 anchored bottom", g.Y, g.YFromBottom)
	}
}

// A present-but-zero offset is not the same as no offset at all.
func TestParseGeometry_ZeroOffsetsPresent(t *testing.T) {
	g, err := ParseGeometry("+0+0")
	if err != nil {
		t.Fatal(err)
	}
	if !g.HasPosition || g.X != 0 || g.Y != 0 {
		t.Errorf("got %+v, want present zero offsets", g)
	}
}

func TestParseGeometry_Invalid(t *testing.T) {
	for _, s := range []string{
		"", "max", "axb", "0x10", "10x0", "10x", "x30",
		"150x30-", "150x30+5", "150x30+1+2+3", "150x30 -250+0",
	} {
		if _, err := ParseGeometry(s); err == nil {
			t.Errorf("ParseGeometry(%q) should fail", s)
		}
	}
}

func TestGeometryResolve(t *testing.T) {
	tests := []struct {
		name       string
		geom       string
		winW, winH int
		wantX      int
		wantY      int
	}{
		{"from left and top", "150x30+40+50", 0, 0, 40, 50},
		{"from right edge", "150x30-250+0", 0, 0, 1920 - 150 - 250, 0},
		{"from bottom edge", "150x30+0-0", 0, 0, 0, 1080 - 30},
		{"position only uses current size", "-10+0", 200, 100, 1920 - 200 - 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGeometry(tt.geom)
			if err != nil {
				t.Fatal(err)
			}
			x, y := g.Resolve(1920, 1080, tt.winW, tt.winH)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Resolve = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
