// This file is part of hackvm - https://github.com/db47h/hackvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"image"
	"image/color"
	"os"

	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

var shotPalette = color.Palette{color.White, color.Black}

// displayImage converts a display window to a black and white image.
func displayImage(d []vm.Word) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, vm.ScreenWidth, vm.ScreenHeight), shotPalette)
	for y := 0; y < vm.ScreenHeight; y++ {
		for x := 0; x < vm.ScreenWidth; x++ {
			if vm.Pixel(d, x, y) {
				img.Pix[y*img.Stride+x] = 1
			}
		}
	}
	return img
}

func saveShot(name string, d []vm.Word) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "screenshot failed")
	}
	if err = bmp.Encode(f, displayImage(d)); err != nil {
		f.Close()
		return errors.Wrapf(err, "%s: screenshot failed", name)
	}
	return errors.Wrap(f.Close(), "screenshot failed")
}
