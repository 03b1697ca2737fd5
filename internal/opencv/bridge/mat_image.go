package bridge

import (
	"fmt"
	"image"
	"image/color"

	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// MatToImage converts a 1- or 3-channel 8-bit Mat into an image.Image for
// display and PNG encoding.
func MatToImage(mat *safe.Mat) (image.Image, error) {
	if err := safe.ValidateMatForOperation(mat, "MatToImage"); err != nil {
		return nil, err
	}

	rows := mat.Rows()
	cols := mat.Cols()

	data, err := mat.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read Mat pixels: %w", err)
	}

	switch mat.Channels() {
	case 1:
		img := image.NewGray(image.Rect(0, 0, cols, rows))
		copy(img.Pix, data)
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, cols, rows))
		for i, o := 0, 0; i+2 < len(data); i, o = i+3, o+4 {
			img.Pix[o] = data[i+2]
			img.Pix[o+1] = data[i+1]
			img.Pix[o+2] = data[i]
			img.Pix[o+3] = 255
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported number of channels: %d", mat.Channels())
	}
}

// ImageToMat converts any decoded image into a BGR Mat. Alpha is discarded
// without premultiplying, so a translucent pixel keeps its stored colour.
func ImageToMat(img image.Image) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := make([]byte, 0, width*height*3)

	switch typedImg := img.(type) {
	case *image.Gray:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				v := typedImg.GrayAt(x, y).Y
				data = append(data, v, v, v)
			}
		}
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := typedImg.NRGBAAt(x, y)
				data = append(data, c.B, c.G, c.R)
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				data = append(data, c.B, c.G, c.R)
			}
		}
	}

	return safe.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, data)
}
