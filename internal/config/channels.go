package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChannelList is the on-disk channel configuration for the ingestion sync.
type ChannelList struct {
	Channels []struct {
		ID    string `yaml:"id"`
		Label string `yaml:"label"`
	} `yaml:"channels"`
}

// LoadChannels resolves the ingestion channel IDs. A configured channels file
// takes precedence over the comma-separated env list.
func (c *Config) LoadChannels() ([]string, error) {
	if c.ChannelsFile == "" {
		return c.ChannelIDs(), nil
	}

	raw, err := os.ReadFile(c.ChannelsFile)
	if err != nil {
		return nil, fmt.Errorf("read channels file %s: %w", c.ChannelsFile, err)
	}

	var list ChannelList
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse channels file %s: %w", c.ChannelsFile, err)
	}

	ids := make([]string, 0, len(list.Channels))
	for _, ch := range list.Channels {
		if ch.ID != "" {
			ids = append(ids, ch.ID)
		}
	}
	return ids, nil
}
