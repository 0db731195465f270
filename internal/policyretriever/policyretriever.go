package policyretriever

import (
	"fmt"
	"os"
)

type PolicyRetriever interface {
	GetPolicy() (string, error)
}

type filePolicyRetriever struct {
	path string
}

// GetPolicy reads the policy file on every call so edits apply without a restart.
func (p *filePolicyRetriever) GetPolicy() (string, error) {
	policy, err := os.ReadFile(p.path)
	if err != nil {
		return "", fmt.Errorf("failed to read policy %s: %w", p.path, err)
	}

	return string(policy), nil
}

func NewFilePolicyRetriever(path string) PolicyRetriever {
	return &filePolicyRetriever{path: path}
}
