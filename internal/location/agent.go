package location

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/models"
)

var userConfigDirFunc = os.UserConfigDir

// AgentProvider reads the latest position fix from the JSON file the
// companion mobile agent keeps updated in its config directory. A fix older
// than MaxFixAge is treated as unavailable.
type AgentProvider struct {
	// FixPath overrides the default fix file location (used in tests)
	FixPath string
	// MaxAge overrides the default staleness bound
	MaxAge time.Duration

	now func() time.Time
}

type agentFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
	// PermissionGranted mirrors the agent-side OS permission state
	PermissionGranted bool `json:"permission_granted"`
}

func NewAgentProvider() *AgentProvider {
	return &AgentProvider{}
}

func (p *AgentProvider) fixPath() (string, error) {
	if p.FixPath != "" {
		return p.FixPath, nil
	}

	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AgentAppIdentifier, constants.AgentFixFileName), nil
}

func (p *AgentProvider) maxAge() time.Duration {
	if p.MaxAge > 0 {
		return p.MaxAge
	}
	return constants.MaxFixAge
}

func (p *AgentProvider) timeNow() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

func (p *AgentProvider) readFix() (agentFix, error) {
	path, err := p.fixPath()
	if err != nil {
		return agentFix{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return agentFix{}, fmt.Errorf("%w: memento-agent has not reported a position", ErrNoFix)
		}
		return agentFix{}, fmt.Errorf("failed to read location fix: %w", err)
	}

	var fix agentFix
	if err := json.Unmarshal(data, &fix); err != nil {
		return agentFix{}, fmt.Errorf("location fix file is malformed: %w", err)
	}

	return fix, nil
}

// RequestPermission reports the agent-side OS location permission. A missing
// fix file means the agent never ran, which reads as not granted.
func (p *AgentProvider) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fix, err := p.readFix()
	if err != nil {
		return false, err
	}

	return fix.PermissionGranted, nil
}

func (p *AgentProvider) Current(ctx context.Context) (models.LocationFix, error) {
	if err := ctx.Err(); err != nil {
		return models.LocationFix{}, err
	}

	fix, err := p.readFix()
	if err != nil {
		return models.LocationFix{}, err
	}

	if age := p.timeNow().Sub(fix.Timestamp); age > p.maxAge() {
		return models.LocationFix{}, fmt.Errorf("%w: last fix is %s old", ErrNoFix, age.Round(time.Second))
	}

	return models.LocationFix{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Accuracy:  fix.Accuracy,
		Timestamp: fix.Timestamp,
	}, nil
}
