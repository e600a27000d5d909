package token

import "sync"

var (
	registerMu sync.RWMutex

	// nextTokenID tracks the next available dynamic token ID.
	nextTokenID = maxBuiltin

	// dynamicTokens maps registered dynamic tokens to their SQL spelling.
	dynamicTokens = make(map[TokenType]string)

	// dynamicNames maps a registered spelling back to its token.
	dynamicNames = make(map[string]TokenType)
)

// Register registers a dialect operator or keyword with the given SQL spelling
// and returns its token type. Registering the same spelling twice returns the
// same token, so two dialects sharing an operator (e.g. "~") agree on it.
func Register(name string) TokenType {
	registerMu.Lock()
	defer registerMu.Unlock()

	if t, ok := dynamicNames[name]; ok {
		return t
	}

	nextTokenID++
	t := nextTokenID
	dynamicTokens[t] = name
	dynamicNames[name] = t
	return t
}

func getDynamicName(t TokenType) (string, bool) {
	if !IsDynamic(t) {
		return "", false
	}
	registerMu.RLock()
	defer registerMu.RUnlock()
	name, ok := dynamicTokens[t]
	return name, ok
}

// Lookup returns the token registered for a spelling.
// Returns ILLEGAL and false if the spelling is not registered.
func Lookup(name string) (TokenType, bool) {
	registerMu.RLock()
	defer registerMu.RUnlock()
	if t, ok := dynamicNames[name]; ok {
		return t, true
	}
	return ILLEGAL, false
}

// IsDynamic returns true if the token type was registered at runtime.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a copy of all registered dynamic tokens.
func RegisteredTokens() map[TokenType]string {
	registerMu.RLock()
	defer registerMu.RUnlock()
	result := make(map[TokenType]string, len(dynamicTokens))
	for k, v := range dynamicTokens {
		result[k] = v
	}
	return result
}
