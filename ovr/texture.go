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

package ovr

// TextureType is the dimensionality of a swapchain texture.
type TextureType int

const (
	Texture2D TextureType = iota
	Texture2DExternal
	TextureCube
)

// TextureFormat is a legacy texture format.
type TextureFormat int

const (
	FormatUnknown TextureFormat = iota
	FormatB5G6R5Unorm
	FormatB5G5R5A1Unorm
	FormatB4G4R4A4Unorm
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8UnormSRGB
	FormatB8G8R8A8Unorm
	FormatB8G8R8A8UnormSRGB
	FormatB8G8R8X8Unorm
	FormatB8G8R8X8UnormSRGB
	FormatR16G16B16A16Float
	FormatR11G11B10Float
	FormatD16Unorm
	FormatD24UnormS8Uint
	FormatD32Float
	FormatD32FloatS8X24Uint
	FormatBC1Unorm
	FormatBC1UnormSRGB
	FormatBC2Unorm
	FormatBC2UnormSRGB
	FormatBC3Unorm
	FormatBC3UnormSRGB
	FormatBC6HUF16
	FormatBC6HSF16
	FormatBC7Unorm
	FormatBC7UnormSRGB
)

// TextureBindFlags declare how the application binds the texture.
type TextureBindFlags uint32

const (
	TextureBindRenderTarget    TextureBindFlags = 0x0001
	TextureBindUnorderedAccess TextureBindFlags = 0x0002
	TextureBindDepthStencil    TextureBindFlags = 0x0004
)

// TextureMiscFlags are the remaining texture creation options.
type TextureMiscFlags uint32

const (
	TextureMiscTypeless          TextureMiscFlags = 0x0001
	TextureMiscAllowGenerateMips TextureMiscFlags = 0x0002
	TextureMiscProtectedContent  TextureMiscFlags = 0x0004
	TextureMiscAutoGenerateMips  TextureMiscFlags = 0x0008
)

// TextureSwapChainDesc is the application's description of a swapchain.
type TextureSwapChainDesc struct {
	Type        TextureType
	Format      TextureFormat
	ArraySize   int
	Width       int
	Height      int
	MipLevels   int
	SampleCount int
	StaticImage bool
	MiscFlags   TextureMiscFlags
	BindFlags   TextureBindFlags
}
