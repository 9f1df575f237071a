package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Identity is one entry of the bot name pool.
type Identity struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// builtinNames seeds the pool when no identity file is provided.
var builtinNames = []string{
	"Captain Hook", "Lucky Luke", "Wild Bill", "Calamity Jane",
	"Doc Holliday", "Annie Oakley", "Jesse James", "Butch Cassidy",
}

var (
	identities   []Identity
	identityOnce sync.Once
	identityErr  error
)

// LoadIdentities reads the bot identity pool from path, once per
// process. Callers that never load still get the built-in pool.
func LoadIdentities(path string) error {
	identityOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			identityErr = fmt.Errorf("read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &identities); err != nil {
			identityErr = fmt.Errorf("parse bot identities: %w", err)
		}
	})
	return identityErr
}

// PickIdentity returns the pool entry for the index-th bot of a game,
// wrapping around when the pool runs out.
func PickIdentity(index int) Identity {
	if len(identities) == 0 {
		return Identity{Name: builtinNames[index%len(builtinNames)]}
	}
	return identities[index%len(identities)]
}
