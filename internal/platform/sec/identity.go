// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package sec

import "encoding/json"

// Identity is the public snapshot of an authenticated account.
//
// It is what the session cache stores and what handlers receive from the
// request context. It deliberately excludes the password hash and any other
// secret material so it can be serialized and logged freely.
type Identity struct {
	UserID    string   `json:"id"`
	Username  string   `json:"username"`
	Role      UserRole `json:"role"`
	Confirmed bool     `json:"confirmed"`
	AvatarURL string   `json:"avatar_url,omitempty"`
}

// MarshalBinary implements encoding.BinaryMarshaler so an Identity can be
// handed directly to the Redis client as a value.
func (i Identity) MarshalBinary() ([]byte, error) {
	return json.Marshal(i)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (i *Identity) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, i)
}
