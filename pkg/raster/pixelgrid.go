// Package raster holds the pixel grids that flow into the spectral
// pipeline, and the channel-order conversion between them.
package raster

import (
	"errors"
	"fmt"
)

var ErrNotColor = errors.New("not a 3-channel color grid")

// ChannelOrder says how the channels of a pixel are laid out.
type ChannelOrder int

const (
	OrderGray ChannelOrder = iota
	OrderGrayAlpha
	OrderRGB
	OrderBGR
	OrderRGBA
	OrderBGRA
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderGray:
		return "gray"
	case OrderGrayAlpha:
		return "gray+alpha"
	case OrderRGB:
		return "rgb"
	case OrderBGR:
		return "bgr"
	case OrderRGBA:
		return "rgba"
	case OrderBGRA:
		return "bgra"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// A PixelGrid is a rectangular grid of 8-bit pixels. Channels is the length
// of the channel axis; zero means there isn't one (a plain 2-D grid, one
// byte per pixel). Pix is row-major with channels interleaved.
type PixelGrid struct {
	Rows     int
	Cols     int
	Channels int
	Order    ChannelOrder
	Pix      []uint8
}

func NewPixelGrid(rows, cols, channels int, order ChannelOrder) PixelGrid {
	return PixelGrid{
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
		Order:    order,
		Pix:      make([]uint8, rows*cols*max(channels, 1)),
	}
}

// FromRows builds a grid from nested [row][col][channel] slices. All rows
// must be the same length, and all pixels must have the same number of
// channels.
func FromRows(rows [][][]uint8, order ChannelOrder) (PixelGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return PixelGrid{Order: order}, nil
	}

	cols := len(rows[0])
	channels := len(rows[0][0])
	g := NewPixelGrid(len(rows), cols, channels, order)

	i := 0
	for y, row := range rows {
		if len(row) != cols {
			return PixelGrid{}, fmt.Errorf("row %d has %d pixels, want %d", y, len(row), cols)
		}
		for x, px := range row {
			if len(px) != channels {
				return PixelGrid{}, fmt.Errorf("pixel (%d,%d) has %d channels, want %d", x, y, len(px), channels)
			}
			i += copy(g.Pix[i:], px)
		}
	}

	return g, nil
}

// FromPlane builds a grid with no channel axis.
func FromPlane(rows [][]uint8) (PixelGrid, error) {
	if len(rows) == 0 {
		return PixelGrid{Order: OrderGray}, nil
	}

	cols := len(rows[0])
	g := NewPixelGrid(len(rows), cols, 0, OrderGray)
	for y, row := range rows {
		if len(row) != cols {
			return PixelGrid{}, fmt.Errorf("row %d has %d pixels, want %d", y, len(row), cols)
		}
		copy(g.Pix[y*cols:], row)
	}

	return g, nil
}

// PixelsPerRow is the stride of a row, in bytes.
func (g PixelGrid) PixelsPerRow() int { return g.Cols * max(g.Channels, 1) }

// At returns the channels of the pixel at column x, row y. The slice
// aliases Pix.
func (g PixelGrid) At(x, y int) []uint8 {
	n := max(g.Channels, 1)
	i := y*g.PixelsPerRow() + x*n
	return g.Pix[i : i+n]
}

func (g PixelGrid) String() string {
	return fmt.Sprintf("PixelGrid[%dx%d, %d channels, %s]", g.Cols, g.Rows, g.Channels, g.Order)
}
