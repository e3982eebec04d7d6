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

package xr

// Extension names understood by the shim.
const (
	KHRD3D11Enable                    = "XR_KHR_D3D11_enable"
	KHRWin32ConvertPerformanceCounter = "XR_KHR_win32_convert_performance_counter_time"
	KHRVisibilityMask                 = "XR_KHR_visibility_mask"
	KHRCompositionLayerDepth          = "XR_KHR_composition_layer_depth"
	KHRCompositionLayerCube           = "XR_KHR_composition_layer_cube"
	KHRCompositionLayerCylinder       = "XR_KHR_composition_layer_cylinder"
	OculusAudioDeviceGUID             = "XR_OCULUS_audio_device_guid"
	FBColorSpace                      = "XR_FB_color_space"
	EPICViewConfigurationFov          = "XR_EPIC_view_configuration_fov"
)
