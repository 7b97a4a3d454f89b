// Defines functions to encode/decode protocol messages.
// Messages are exchanged as JSON, byte strings in base64.

package protocol

import "encoding/json"

// MarshalReply returns the JSON encoding of r.
func MarshalReply(r *Reply) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalReply parses a JSON-encoded reply. Anything that does not
// decode to a well-formed reply is ErrMalformedMessage.
func UnmarshalReply(msg []byte) (*Reply, error) {
	var r Reply
	if err := json.Unmarshal(msg, &r); err != nil {
		return nil, ErrMalformedMessage
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// MarshalCheckpointUpdate returns the JSON encoding of u.
func MarshalCheckpointUpdate(u *CheckpointUpdate) ([]byte, error) {
	return json.Marshal(u)
}

// UnmarshalCheckpointUpdate parses a JSON-encoded checkpoint update.
// Anything that does not decode to a well-formed update is
// ErrMalformedMessage.
func UnmarshalCheckpointUpdate(msg []byte) (*CheckpointUpdate, error) {
	var u CheckpointUpdate
	if err := json.Unmarshal(msg, &u); err != nil {
		return nil, ErrMalformedMessage
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}
