// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package properties

import (
	"chartcore/indapi"
	"fmt"
	"strconv"
)

// SetPositiveValue parses value into n. n is left unchanged if value is not a positive integer.
func SetPositiveValue(n *int, key string, value string) error {
	valInt, err := strconv.Atoi(value)
	if err != nil || valInt <= 0 {
		return fmt.Errorf("%w: %s=%q", indapi.ErrInvalidProperty, key, value)
	}
	*n = valInt
	return nil
}

func Unknown(key string) error {
	return fmt.Errorf("%w: unknown key %s", indapi.ErrInvalidProperty, key)
}
