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

package gfx

// Format is a DXGI_FORMAT value. Swapchain formats are exchanged with the
// runtime as int64.
type Format int64

const (
	FormatUnknown           Format = 0
	FormatR16G16B16A16Float Format = 10
	FormatD32FloatS8X24Uint Format = 20
	FormatR11G11B10Float    Format = 26
	FormatR8G8B8A8Unorm     Format = 28
	FormatR8G8B8A8UnormSRGB Format = 29
	FormatD32Float          Format = 40
	FormatD24UnormS8Uint    Format = 45
	FormatD16Unorm          Format = 55
	FormatBC1Unorm          Format = 71
	FormatBC2Unorm          Format = 74
	FormatBC3Unorm          Format = 77
	FormatB5G6R5Unorm       Format = 85
	FormatB5G5R5A1Unorm     Format = 86
	FormatB8G8R8A8Unorm     Format = 87
	FormatB8G8R8X8Unorm     Format = 88
	FormatB8G8R8A8UnormSRGB Format = 91
	FormatB8G8R8X8UnormSRGB Format = 93
	FormatBC6HUF16          Format = 95
	FormatBC6HSF16          Format = 96
	FormatBC7Unorm          Format = 98
	FormatB4G4R4A4Unorm     Format = 115
)

var formatNames = map[Format]string{
	FormatUnknown:           "UNKNOWN",
	FormatR16G16B16A16Float: "R16G16B16A16_FLOAT",
	FormatD32FloatS8X24Uint: "D32_FLOAT_S8X24_UINT",
	FormatR11G11B10Float:    "R11G11B10_FLOAT",
	FormatR8G8B8A8Unorm:     "R8G8B8A8_UNORM",
	FormatR8G8B8A8UnormSRGB: "R8G8B8A8_UNORM_SRGB",
	FormatD32Float:          "D32_FLOAT",
	FormatD24UnormS8Uint:    "D24_UNORM_S8_UINT",
	FormatD16Unorm:          "D16_UNORM",
	FormatBC1Unorm:          "BC1_UNORM",
	FormatBC2Unorm:          "BC2_UNORM",
	FormatBC3Unorm:          "BC3_UNORM",
	FormatB5G6R5Unorm:       "B5G6R5_UNORM",
	FormatB5G5R5A1Unorm:     "B5G5R5A1_UNORM",
	FormatB8G8R8A8Unorm:     "B8G8R8A8_UNORM",
	FormatB8G8R8X8Unorm:     "B8G8R8X8_UNORM",
	FormatB8G8R8A8UnormSRGB: "B8G8R8A8_UNORM_SRGB",
	FormatB8G8R8X8UnormSRGB: "B8G8R8X8_UNORM_SRGB",
	FormatBC6HUF16:          "BC6H_UF16",
	FormatBC6HSF16:          "BC6H_SF16",
	FormatBC7Unorm:          "BC7_UNORM",
	FormatB4G4R4A4Unorm:     "B4G4R4A4_UNORM",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseFormat returns the format with the given name, with or without the
// DXGI_FORMAT_ prefix.
func ParseFormat(name string) (Format, bool) {
	if len(name) > 12 && name[:12] == "DXGI_FORMAT_" {
		name = name[12:]
	}
	for f, n := range formatNames {
		if n == name {
			return f, true
		}
	}
	return FormatUnknown, false
}

// ViewDimension is a D3D shader resource view dimension.
type ViewDimension int

const (
	ViewDimensionUnknown          ViewDimension = 0
	ViewDimensionTexture2D        ViewDimension = 4
	ViewDimensionTexture2DArray   ViewDimension = 5
	ViewDimensionTexture2DMS      ViewDimension = 6
	ViewDimensionTexture2DMSArray ViewDimension = 7
	ViewDimensionTextureCube      ViewDimension = 9
)
