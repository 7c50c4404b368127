/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// resolveDeviceID returns a stable identifier for this device. An explicitly
// configured ID always wins. Otherwise the ID is read from the state file, or
// generated once and persisted there so restarts keep the same identity.
func resolveDeviceID(configured, stateFile string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	if stateFile == "" {
		return uuid.NewString(), nil
	}

	if data, err := os.ReadFile(stateFile); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}

	id := uuid.NewString()

	if err := os.MkdirAll(filepath.Dir(stateFile), 0o750); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := os.WriteFile(stateFile, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}

	return id, nil
}
