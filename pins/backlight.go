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

package pins

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// PwmBaseDir is the sysfs directory of the PWM controller.
var PwmBaseDir = "/sys/class/pwm/pwmchip0/"

const (
	periodFile = "/period"
	dutyFile   = "/duty_cycle"
	enableFile = "/enable"

	backlightPeriod = time.Millisecond
)

// Backlight drives a display backlight (or LED panel brightness
// enable line) from a hardware PWM unit.
type Backlight struct {
	unit   int
	base   string
	pFile  *os.File
	dFile  *os.File
	period int64
	duty   int64
}

// NewBacklight exports and enables a hardware PWM unit, initially
// with the backlight off.
func NewBacklight(unit int) (*Backlight, error) {
	b := new(Backlight)
	b.unit = unit
	b.base = fmt.Sprintf("%spwm%d", PwmBaseDir, unit)
	b.period = -1
	b.duty = -1

	pName := b.base + periodFile
	if err := exportUnit(PwmBaseDir, pName, unit); err != nil {
		return nil, fmt.Errorf("pwm%d: %w: %v", unit, ErrUnavailable, err)
	}
	var err error
	dName := b.base + dutyFile
	if WaitForUdev {
		err = waitWritable(dName)
	}
	if err == nil {
		b.pFile, err = os.OpenFile(pName, os.O_RDWR, 0)
	}
	if err == nil {
		b.dFile, err = os.OpenFile(dName, os.O_RDWR, 0)
	}
	if err == nil {
		err = b.Set(0)
	}
	if err == nil {
		err = writeAttr(b.base+enableFile, "1")
	}
	if err != nil {
		b.release()
		return nil, fmt.Errorf("pwm%d: %v", unit, err)
	}
	return b, nil
}

// Close turns off the backlight and releases the unit.
func (b *Backlight) Close() error {
	err := writeAttr(b.base+enableFile, "0")
	b.release()
	return err
}

func (b *Backlight) release() {
	if b.pFile != nil {
		b.pFile.Close()
	}
	if b.dFile != nil {
		b.dFile.Close()
	}
	unexportUnit(PwmBaseDir, b.unit)
}

// Set sets the brightness as a percentage.
func (b *Backlight) Set(brightness int) error {
	if brightness < 0 || brightness > 100 {
		return fmt.Errorf("pwm%d: %d: invalid brightness percentage", b.unit, brightness)
	}
	pNano := backlightPeriod.Nanoseconds()
	dNano := pNano * int64(brightness) / 100
	// The duty cycle must never be greater than the current period,
	// so the order of writing is important.
	if dNano > b.period {
		if err := b.write(b.pFile, pNano); err != nil {
			return err
		}
		if err := b.write(b.dFile, dNano); err != nil {
			return err
		}
	} else {
		if dNano != b.duty {
			if err := b.write(b.dFile, dNano); err != nil {
				return err
			}
		}
		if pNano != b.period {
			if err := b.write(b.pFile, pNano); err != nil {
				return err
			}
		}
	}
	b.period = pNano
	b.duty = dNano
	return nil
}

func (b *Backlight) write(f *os.File, v int64) error {
	_, err := f.WriteAt([]byte(strconv.FormatInt(v, 10)), 0)
	return err
}
