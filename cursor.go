package versionpager

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// VersionCursor is the position of a VersionPager: the exclusive upper
// timestamp bound of the next window, the number of versions returned so far,
// and whether the stream is exhausted.
//
// String encodes it as an opaque token; DecodeVersionCursor parses it back,
// and WithCursor resumes a pager from it.
type VersionCursor struct {
	MaxTimestamp  int64 `json:"t"`
	VersionsCount int   `json:"n"`
	Exhausted     bool  `json:"x,omitempty"`
}

// DecodeVersionCursor parses a base64 encoded token into *VersionCursor.
// An empty token decodes to nil, meaning "start from the newest version".
func DecodeVersionCursor(b64String string) (*VersionCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded version cursor: %w", ErrInvalidArgument, err)
	}

	var c VersionCursor
	if err = json.Unmarshal(jsonData, &c); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal json encoded version cursor: %w", ErrInvalidArgument, err)
	}

	return &c, nil
}

// String - implements fmt.Stringer.
func (c *VersionCursor) String() string {
	if c == nil {
		return ""
	}

	jTok, err := json.Marshal(c)
	if err != nil {
		panic(fmt.Errorf("cannot marshal version cursor: %w", err))
	}

	return _encoder.EncodeToString(jTok)
}

// validate checks that the cursor can continue a pager over [minTimestamp,
// maxTimestamp) with the given version budget.
func (c *VersionCursor) validate(minTimestamp, maxTimestamp int64, totalVersions int) error {
	if c == nil {
		return nil
	}

	if c.VersionsCount < 0 || c.VersionsCount > totalVersions {
		return invalidArgumentf("cursor versions count %d out of [0, %d]", c.VersionsCount, totalVersions)
	}

	if c.Exhausted {
		return nil
	}

	if c.MaxTimestamp <= minTimestamp || c.MaxTimestamp > maxTimestamp {
		return invalidArgumentf("cursor timestamp %d out of (%d, %d]", c.MaxTimestamp, minTimestamp, maxTimestamp)
	}

	if c.VersionsCount == totalVersions {
		return invalidArgumentf("cursor consumed the whole budget of %d versions but is not exhausted", totalVersions)
	}

	return nil
}

var _ fmt.Stringer = (*VersionCursor)(nil)
