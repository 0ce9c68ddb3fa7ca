package model

import "encoding/json"

// RawJSON is a nullable jsonb column surfaced to clients as-is.
type RawJSON = json.RawMessage
