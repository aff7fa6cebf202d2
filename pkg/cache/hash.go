package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// designDigest keys a design by the SHA-256 of its JSON-encoded key spec,
// so a design reached through CLI flags, a design file or an API request
// shares one entry when the options agree.
func designDigest(spec any) string {
	data, err := json.Marshal(spec)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", spec))
	}
	return "design:" + Hash(data)
}

// Hash returns the hex SHA-256 of data. FileCache names entry files by the
// hash of their key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
