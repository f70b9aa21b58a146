package render

import "image/color"

// swatch maps a display code to RGBA bytes. Codes past the last entry
// reuse it; an empty swatch paints transparent black.
type swatch [][4]byte

func paletteSwatch(palette []color.RGBA) swatch {
	sw := make(swatch, len(palette))
	for i, c := range palette {
		sw[i] = [4]byte{c.R, c.G, c.B, c.A}
	}
	return sw
}

// maskSwatch paints 0 with off and any other code with on.
func maskSwatch(on, off color.Color) swatch {
	return swatch{rgba(off), rgba(on)}
}

func rgba(c color.Color) [4]byte {
	n := color.RGBAModel.Convert(c).(color.RGBA)
	return [4]byte{n.R, n.G, n.B, n.A}
}

// paint writes one pixel per code into buf.
func (sw swatch) paint(buf []byte, codes []uint8) {
	if len(sw) == 0 {
		clear(buf[:4*len(codes)])
		return
	}
	for i, c := range codes {
		copy(buf[4*i:4*i+4], sw[min(int(c), len(sw)-1)][:])
	}
}
