package infoprovider

import "strings"

type InfoProvider interface {
	GetRoles(id string) ([]string, error)
}

type staticInfoProvider struct {
	users map[string][]string
}

// GetRoles returns the roles configured for id. Unknown users have no roles.
func (p *staticInfoProvider) GetRoles(id string) ([]string, error) {
	if roles, ok := p.users[strings.ToLower(id)]; ok {
		return roles, nil
	}

	return []string{}, nil
}

// NewStaticInfoProvider builds an InfoProvider from a user to roles mapping. User names match
// case-insensitively.
func NewStaticInfoProvider(users map[string][]string) InfoProvider {
	normalized := make(map[string][]string, len(users))
	for user, roles := range users {
		normalized[strings.ToLower(user)] = roles
	}

	return &staticInfoProvider{users: normalized}
}
