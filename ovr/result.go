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

// Package ovr declares the legacy head-mounted-display SDK surface that host
// applications are written against.
package ovr

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ovrxr/ovrxr/xr"
)

// Result is a legacy SDK result code. Failure codes implement error.
type Result int32

const (
	Success                          Result = 0
	ErrMemoryAllocationFailure       Result = -1000
	ErrInvalidSession                Result = -1002
	ErrTimeout                       Result = -1003
	ErrNotInitialized                Result = -1004
	ErrInvalidParameter              Result = -1005
	ErrServiceError                  Result = -1006
	ErrNoHmd                         Result = -1007
	ErrUnsupported                   Result = -1009
	ErrDeviceUnavailable             Result = -1010
	ErrInvalidHeadsetOrientation     Result = -1011
	ErrInvalidOperation              Result = -1015
	ErrInsufficientArraySize         Result = -1016
	ErrLostTracking                  Result = -1018
	ErrInitialize                    Result = -3000
	ErrRuntimeException              Result = -7000
	ErrTextureSwapChainFull          Result = -1020
	ErrTextureSwapChainInvalid       Result = -1021
	ErrGraphicsDeviceReset           Result = -1022
	ErrDisplayRemoved                Result = -1023
	ErrContentProtectionNotAvailable Result = -1024
)

var resultNames = map[Result]string{
	Success:                          "ovrSuccess",
	ErrMemoryAllocationFailure:       "ovrError_MemoryAllocationFailure",
	ErrInvalidSession:                "ovrError_InvalidSession",
	ErrTimeout:                       "ovrError_Timeout",
	ErrNotInitialized:                "ovrError_NotInitialized",
	ErrInvalidParameter:              "ovrError_InvalidParameter",
	ErrServiceError:                  "ovrError_ServiceError",
	ErrNoHmd:                         "ovrError_NoHmd",
	ErrUnsupported:                   "ovrError_Unsupported",
	ErrDeviceUnavailable:             "ovrError_DeviceUnavailable",
	ErrInvalidHeadsetOrientation:     "ovrError_InvalidHeadsetOrientation",
	ErrInvalidOperation:              "ovrError_InvalidOperation",
	ErrInsufficientArraySize:         "ovrError_InsufficientArraySize",
	ErrLostTracking:                  "ovrError_LostTracking",
	ErrInitialize:                    "ovrError_Initialize",
	ErrRuntimeException:              "ovrError_RuntimeException",
	ErrTextureSwapChainFull:          "ovrError_TextureSwapChainFull",
	ErrTextureSwapChainInvalid:       "ovrError_TextureSwapChainInvalid",
	ErrGraphicsDeviceReset:           "ovrError_GraphicsDeviceReset",
	ErrDisplayRemoved:                "ovrError_DisplayRemoved",
	ErrContentProtectionNotAvailable: "ovrError_ContentProtectionNotAvailable",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("ovrResult(%d)", int32(r))
}

// Error implements error.
func (r Result) Error() string { return r.String() }

// Failure returns true if r is a failure code.
func (r Result) Failure() bool { return r < 0 }

// fromXR maps runtime failures that have a direct legacy equivalent.
var fromXR = map[xr.Result]Result{
	xr.ErrorOutOfMemory:                ErrMemoryAllocationFailure,
	xr.ErrorValidationFailure:          ErrInvalidParameter,
	xr.ErrorTimeInvalid:                ErrInvalidParameter,
	xr.ErrorSizeInsufficient:           ErrInsufficientArraySize,
	xr.ErrorInstanceLost:               ErrServiceError,
	xr.ErrorSessionLost:                ErrDeviceUnavailable,
	xr.ErrorSessionNotRunning:          ErrInvalidSession,
	xr.ErrorFormFactorUnavailable:      ErrNoHmd,
	xr.ErrorFeatureUnsupported:         ErrUnsupported,
	xr.ErrorFunctionUnsupported:        ErrUnsupported,
	xr.ErrorExtensionNotPresent:        ErrUnsupported,
	xr.ErrorSwapchainFormatUnsupported: ErrUnsupported,
	xr.ErrorGraphicsDeviceInvalid:      ErrGraphicsDeviceReset,
}

// ResultOf returns the legacy result code that best represents err.
// A nil error is Success. Errors whose cause is an ovr.Result keep that code,
// runtime failures are mapped onto their closest legacy code, and anything
// else is a runtime exception.
func ResultOf(err error) Result {
	if err == nil {
		return Success
	}
	switch cause := errors.Cause(err).(type) {
	case Result:
		return cause
	case xr.Result:
		if r, ok := fromXR[cause]; ok {
			return r
		}
	}
	return ErrRuntimeException
}

// Check wraps a failed runtime call with the name of the call. The runtime's
// own result code stays recoverable with errors.Cause.
func Check(err error, call string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, call)
}
