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

// Package caps negotiates the optional runtime features and creates the
// runtime instance the shim translates into.
package caps

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/ovrxr/ovrxr/core/log"
	"github.com/ovrxr/ovrxr/ovr"
	"github.com/ovrxr/ovrxr/shim/hack"
	"github.com/ovrxr/ovrxr/xr"
)

var (
	// Required lists the extensions the shim cannot run without.
	Required = []string{
		xr.KHRD3D11Enable,
		xr.KHRWin32ConvertPerformanceCounter,
	}
	// Optional lists the extensions enabled when the runtime supports them.
	Optional = []string{
		xr.KHRVisibilityMask,
		xr.KHRCompositionLayerDepth,
		xr.KHRCompositionLayerCube,
		xr.KHRCompositionLayerCylinder,
		xr.OculusAudioDeviceGUID,
		xr.FBColorSpace,
		xr.EPICViewConfigurationFov,
	}
)

// Capabilities records which optional features were enabled.
type Capabilities struct {
	VisibilityMask       bool
	CompositionDepth     bool
	CompositionCube      bool
	CompositionCylinder  bool
	AudioDevice          bool
	ColorSpace           bool
	ViewConfigurationFov bool
}

// Identity describes the running application and the runtime it talks to.
type Identity struct {
	Executable     string
	RuntimeName    string
	RuntimeVersion xr.Version
}

// MinorVersion returns the minor component of the runtime version.
func (i Identity) MinorVersion() uint32 { return i.RuntimeVersion.Minor() }

// Target returns the identity hacks are resolved against.
func (i Identity) Target() hack.Target {
	return hack.Target{Executable: i.Executable, Runtime: i.RuntimeName, Version: i.RuntimeVersion}
}

// Options controls instance creation.
type Options struct {
	ApplicationName    string
	ApplicationVersion uint32
	// Executable overrides the executable name hacks are matched against.
	// By default it is the base name of the running executable.
	Executable string
	// Hacks are checked before the builtin hack table.
	Hacks []hack.Record
}

// Instance is a negotiated runtime instance. It is immutable once created.
type Instance struct {
	Runtime  xr.Runtime
	Handle   xr.Instance
	Identity Identity
	Capabilities
	Hacks *hack.Registry

	enabled map[string]bool
}

// CreateInstance negotiates the extension set with rt and creates an
// instance. Failure to enumerate the runtime's extensions is fatal.
func CreateInstance(ctx context.Context, rt xr.Runtime, opts Options) (*Instance, error) {
	ctx = log.Enter(ctx, "CreateInstance")

	props, err := rt.EnumerateInstanceExtensionProperties(ctx)
	if err != nil {
		return nil, ovr.Check(err, "xrEnumerateInstanceExtensionProperties")
	}
	available := make(map[string]bool, len(props))
	for _, p := range props {
		available[p.Name] = true
	}

	enabled := map[string]bool{}
	extensions := []string{}
	for _, name := range Required {
		if !available[name] {
			log.W(ctx, "Required extension %s is not supported", name)
		}
		enabled[name] = true
		extensions = append(extensions, name)
	}
	for _, name := range Optional {
		if available[name] {
			enabled[name] = true
			extensions = append(extensions, name)
		}
	}

	handle, err := rt.CreateInstance(ctx, xr.InstanceCreateInfo{
		ApplicationName:    opts.ApplicationName,
		ApplicationVersion: opts.ApplicationVersion,
		EngineName:         "ovrxr",
		APIVersion:         xr.MakeVersion(1, 0, 0),
		EnabledExtensions:  extensions,
	})
	if err != nil {
		return nil, ovr.Check(err, "xrCreateInstance")
	}

	info, err := rt.GetInstanceProperties(ctx, handle)
	if err != nil {
		rt.DestroyInstance(ctx, handle)
		return nil, ovr.Check(err, "xrGetInstanceProperties")
	}

	exe := opts.Executable
	if exe == "" {
		exe = executable()
	}
	id := Identity{
		Executable:     exe,
		RuntimeName:    info.RuntimeName,
		RuntimeVersion: info.RuntimeVersion,
	}
	i := &Instance{
		Runtime:  rt,
		Handle:   handle,
		Identity: id,
		Capabilities: Capabilities{
			VisibilityMask:       enabled[xr.KHRVisibilityMask],
			CompositionDepth:     enabled[xr.KHRCompositionLayerDepth],
			CompositionCube:      enabled[xr.KHRCompositionLayerCube],
			CompositionCylinder:  enabled[xr.KHRCompositionLayerCylinder],
			AudioDevice:          enabled[xr.OculusAudioDeviceGUID],
			ColorSpace:           enabled[xr.FBColorSpace],
			ViewConfigurationFov: enabled[xr.EPICViewConfigurationFov],
		},
		Hacks:   hack.New(id.Target(), hack.WithOverrides(opts.Hacks)),
		enabled: enabled,
	}
	log.D(ctx, "Runtime %s %v for %s, hacks: %v", id.RuntimeName, id.RuntimeVersion, id.Executable, i.Hacks.Enabled())
	return i, nil
}

// Supports returns true if the named extension is enabled on the instance.
func (i *Instance) Supports(name string) bool { return i.enabled[name] }

// MinorVersion returns the minor component of the runtime version.
func (i *Instance) MinorVersion() uint32 { return i.Identity.MinorVersion() }

// Extensions returns the enabled extensions, sorted.
func (i *Instance) Extensions() []string {
	out := make([]string, 0, len(i.enabled))
	for name := range i.enabled {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Destroy destroys the runtime instance.
func (i *Instance) Destroy(ctx context.Context) error {
	return ovr.Check(i.Runtime.DestroyInstance(ctx, i.Handle), "xrDestroyInstance")
}

func executable() string {
	path, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Base(path)
}
