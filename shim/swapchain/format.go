// Copyright (C) 2024 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package swapchain

import (
	"github.com/ovrxr/ovrxr/gfx"
	"github.com/ovrxr/ovrxr/ovr"
)

// FormatSupport reports whether a swapchain format is supported.
type FormatSupport interface {
	SupportsFormat(format int64) bool
}

// FormatSet is a FormatSupport backed by a list of formats.
type FormatSet []int64

// SupportsFormat implements FormatSupport.
func (s FormatSet) SupportsFormat(format int64) bool {
	for _, f := range s {
		if f == format {
			return true
		}
	}
	return false
}

// NegotiateFormat maps format onto one the runtime can create. Supported
// formats are returned unchanged. High range formats fall back to
// R16G16B16A16_FLOAT and then to R8G8B8A8_UNORM, and formats without alpha
// gain one. Anything else is returned unchanged for the runtime to reject.
func NegotiateFormat(s FormatSupport, format gfx.Format) gfx.Format {
	if s.SupportsFormat(int64(format)) {
		return format
	}
	switch format {
	case gfx.FormatR11G11B10Float:
		if s.SupportsFormat(int64(gfx.FormatR16G16B16A16Float)) {
			return gfx.FormatR16G16B16A16Float
		}
		return gfx.FormatR8G8B8A8Unorm
	case gfx.FormatR16G16B16A16Float:
		return gfx.FormatR8G8B8A8Unorm
	case gfx.FormatB8G8R8X8Unorm:
		return gfx.FormatB8G8R8A8Unorm
	case gfx.FormatB8G8R8X8UnormSRGB:
		return gfx.FormatB8G8R8A8UnormSRGB
	}
	return format
}

var dxgiFormats = map[ovr.TextureFormat]gfx.Format{
	ovr.FormatB5G6R5Unorm:       gfx.FormatB5G6R5Unorm,
	ovr.FormatB5G5R5A1Unorm:     gfx.FormatB5G5R5A1Unorm,
	ovr.FormatB4G4R4A4Unorm:     gfx.FormatB4G4R4A4Unorm,
	ovr.FormatR8G8B8A8Unorm:     gfx.FormatR8G8B8A8Unorm,
	ovr.FormatR8G8B8A8UnormSRGB: gfx.FormatR8G8B8A8UnormSRGB,
	ovr.FormatB8G8R8A8Unorm:     gfx.FormatB8G8R8A8Unorm,
	ovr.FormatB8G8R8A8UnormSRGB: gfx.FormatB8G8R8A8UnormSRGB,
	ovr.FormatB8G8R8X8Unorm:     gfx.FormatB8G8R8X8Unorm,
	ovr.FormatB8G8R8X8UnormSRGB: gfx.FormatB8G8R8X8UnormSRGB,
	ovr.FormatR16G16B16A16Float: gfx.FormatR16G16B16A16Float,
	ovr.FormatR11G11B10Float:    gfx.FormatR11G11B10Float,

	ovr.FormatD16Unorm:          gfx.FormatD16Unorm,
	ovr.FormatD24UnormS8Uint:    gfx.FormatD24UnormS8Uint,
	ovr.FormatD32Float:          gfx.FormatD32Float,
	ovr.FormatD32FloatS8X24Uint: gfx.FormatD32FloatS8X24Uint,

	// The runtime has no sRGB block compressed formats.
	ovr.FormatBC1Unorm:     gfx.FormatBC1Unorm,
	ovr.FormatBC1UnormSRGB: gfx.FormatBC1Unorm,
	ovr.FormatBC2Unorm:     gfx.FormatBC2Unorm,
	ovr.FormatBC2UnormSRGB: gfx.FormatBC2Unorm,
	ovr.FormatBC3Unorm:     gfx.FormatBC3Unorm,
	ovr.FormatBC3UnormSRGB: gfx.FormatBC3Unorm,
	ovr.FormatBC6HUF16:     gfx.FormatBC6HUF16,
	ovr.FormatBC6HSF16:     gfx.FormatBC6HSF16,
	ovr.FormatBC7Unorm:     gfx.FormatBC7Unorm,
	ovr.FormatBC7UnormSRGB: gfx.FormatBC7Unorm,
}

// TextureFormatToDXGI returns the DXGI format of a legacy texture format.
// Unknown formats map to gfx.FormatUnknown.
func TextureFormatToDXGI(format ovr.TextureFormat) gfx.Format {
	return dxgiFormats[format]
}

// IsDepthFormat returns true for depth-stencil formats.
func IsDepthFormat(format ovr.TextureFormat) bool {
	switch format {
	case ovr.FormatD16Unorm, ovr.FormatD24UnormS8Uint, ovr.FormatD32Float, ovr.FormatD32FloatS8X24Uint:
		return true
	}
	return false
}

// ViewDimension returns the shader resource view dimension for textures
// created from desc.
func ViewDimension(desc ovr.TextureSwapChainDesc) gfx.ViewDimension {
	switch {
	case desc.Type == ovr.TextureCube:
		return gfx.ViewDimensionTextureCube
	case desc.ArraySize > 1 && desc.SampleCount > 1:
		return gfx.ViewDimensionTexture2DMSArray
	case desc.ArraySize > 1:
		return gfx.ViewDimensionTexture2DArray
	case desc.SampleCount > 1:
		return gfx.ViewDimensionTexture2DMS
	}
	return gfx.ViewDimensionTexture2D
}
