// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// sysfs class attribute helpers.

package pins

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForUdev enables waiting for exported attribute files to become
// writable. When not running as root, udev changes the group and mode
// of newly exported files a short time after the export, and until then
// opening them fails with a permission error.
var WaitForUdev = os.Geteuid() != 0

const udevTimeout = 2 * time.Second

// exportUnit makes attr accessible, writing the unit number to the
// class export file if it is not already.
func exportUnit(class, attr string, unit int) error {
	if unix.Access(attr, unix.R_OK|unix.W_OK) == nil {
		return nil
	}
	if err := writeAttr(class+"export", strconv.Itoa(unit)); err != nil {
		return err
	}
	if WaitForUdev {
		return waitWritable(attr)
	}
	return nil
}

func unexportUnit(class string, unit int) error {
	return writeAttr(class+"unexport", strconv.Itoa(unit))
}

// writeAttr replaces the value of an attribute file.
func writeAttr(name, v string) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	_, err = f.WriteString(v)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func waitWritable(name string) error {
	deadline := time.Now().Add(udevTimeout)
	for unix.Access(name, unix.W_OK) != nil {
		if time.Now().After(deadline) {
			return fmt.Errorf("%s: not writable after %s", name, udevTimeout)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
