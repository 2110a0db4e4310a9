package tryon

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// garmentOpacity is the fixed blend strength of the overlaid garment.
const garmentOpacity = 0.7

// Composite overlays the garment onto the photo as a deterministic local
// fallback: the garment is scaled to fit inside the photo's bounds, centered
// and multiply-blended at fixed opacity. It only fails when an input image
// cannot be decoded.
func Composite(photo, garment []byte) ([]byte, error) {
	photoImg, _, err := image.Decode(bytes.NewReader(photo))
	if err != nil {
		return nil, fmt.Errorf("failed to decode model image: %v", err)
	}
	garmentImg, _, err := image.Decode(bytes.NewReader(garment))
	if err != nil {
		return nil, fmt.Errorf("failed to decode garment image: %v", err)
	}

	bounds := photoImg.Bounds()
	base := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(base, base.Bounds(), photoImg, bounds.Min, draw.Src)

	overlay := scaleToFit(garmentImg, base.Bounds())
	offsetX := (base.Bounds().Dx() - overlay.Bounds().Dx()) / 2
	offsetY := (base.Bounds().Dy() - overlay.Bounds().Dy()) / 2
	multiplyBlend(base, overlay, offsetX, offsetY)

	var out bytes.Buffer
	if err := png.Encode(&out, base); err != nil {
		return nil, fmt.Errorf("failed to encode composite: %v", err)
	}
	return out.Bytes(), nil
}

// scaleToFit resizes src to the largest size that fits inside box while
// preserving aspect ratio.
func scaleToFit(src image.Image, box image.Rectangle) *image.RGBA {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	bw, bh := box.Dx(), box.Dy()

	scale := float64(bw) / float64(sw)
	if s := float64(bh) / float64(sh); s < scale {
		scale = s
	}
	tw := int(float64(sw) * scale)
	th := int(float64(sh) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// multiplyBlend composites overlay onto base at (offsetX, offsetY) using a
// multiply blend weighted by garmentOpacity and the overlay's own alpha.
func multiplyBlend(base *image.RGBA, overlay *image.RGBA, offsetX, offsetY int) {
	ob := overlay.Bounds()
	for y := ob.Min.Y; y < ob.Max.Y; y++ {
		for x := ob.Min.X; x < ob.Max.X; x++ {
			bx, by := x+offsetX, y+offsetY
			if !(image.Point{bx, by}).In(base.Bounds()) {
				continue
			}

			bp := base.RGBAAt(bx, by)
			op := overlay.RGBAAt(x, y)

			weight := garmentOpacity * float64(op.A) / 255
			bp.R = blendChannel(bp.R, op.R, weight)
			bp.G = blendChannel(bp.G, op.G, weight)
			bp.B = blendChannel(bp.B, op.B, weight)
			base.SetRGBA(bx, by, bp)
		}
	}
}

func blendChannel(base, over uint8, weight float64) uint8 {
	b := float64(base) / 255
	o := float64(over) / 255
	v := b*(1-weight) + (b*o)*weight
	return uint8(v*255 + 0.5)
}
