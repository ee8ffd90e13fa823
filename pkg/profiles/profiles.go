// Package profiles discovers AWS profiles from the shared config and
// credentials files.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/models"
	"gopkg.in/ini.v1"
)

// NotSet is shown for values neither file defines.
const NotSet = "Not set"

// ErrNoProfiles is returned when neither file defines a profile.
var ErrNoProfiles = errors.New("no AWS profiles found")

// AccountResolver looks up the account ID behind a profile.
type AccountResolver interface {
	AccountID(ctx context.Context, profile string) (string, error)
}

// Discover lists profiles from the config file ("[profile X]" and
// "[default]" sections) followed by credentials-only profiles. A profile in
// both files is returned once, with the config region and the credentials
// access key. Missing files are treated as empty.
func Discover(configPath, credentialsPath string) ([]models.Profile, error) {
	cfg, err := load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading AWS config file %s: %w", configPath, err)
	}
	creds, err := load(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("error reading AWS credentials file %s: %w", credentialsPath, err)
	}

	var result []models.Profile
	index := make(map[string]int)

	for _, section := range cfg.Sections() {
		name, ok := configProfileName(section.Name())
		if !ok {
			continue
		}
		if _, seen := index[name]; seen {
			continue
		}
		index[name] = len(result)
		result = append(result, models.Profile{
			Name:      name,
			Region:    keyOr(section, "region", NotSet),
			AccessKey: NotSet,
			Source:    models.SourceConfig,
		})
	}

	for _, section := range creds.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}
		accessKey := keyOr(section, "aws_access_key_id", NotSet)

		if i, ok := index[name]; ok {
			result[i].AccessKey = accessKey
			result[i].Source = models.SourceBoth
			continue
		}

		index[name] = len(result)
		result = append(result, models.Profile{
			Name:      name,
			Region:    regionFromConfig(cfg, name),
			AccessKey: accessKey,
			Source:    models.SourceCredentials,
		})
	}

	log.Debugf("discovered %d profiles", len(result))
	return result, nil
}

// Names returns the profile names in discovery order, ErrNoProfiles when
// there are none.
func Names(configPath, credentialsPath string) ([]string, error) {
	found, err := Discover(configPath, credentialsPath)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNoProfiles
	}
	names := make([]string, 0, len(found))
	for _, p := range found {
		names = append(names, p.Name)
	}
	return names, nil
}

// EnrichAccounts fills AccountID for each profile, one lookup at a time. A
// failed lookup is recorded as "Error: ..." and does not stop the loop.
func EnrichAccounts(ctx context.Context, list []models.Profile, resolver AccountResolver) {
	for i := range list {
		id, err := resolver.AccountID(ctx, list[i].Name)
		if err != nil {
			log.WithError(err).Debugf("account lookup failed for %s", list[i].Name)
			list[i].AccountID = fmt.Sprintf("Error: %v", err)
			continue
		}
		list[i].AccountID = id
	}
}

// MaskAccessKey keeps the first and last four characters of an access key.
func MaskAccessKey(key string) string {
	if key == NotSet || len(key) <= 8 {
		return key
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func load(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{Loose: true, AllowNestedValues: true}, path)
}

// configProfileName maps a config section name to a profile name.
func configProfileName(section string) (string, bool) {
	switch {
	case section == "default":
		return "default", true
	case strings.HasPrefix(section, "profile "):
		name := strings.TrimSpace(strings.TrimPrefix(section, "profile "))
		return name, name != ""
	default:
		return "", false
	}
}

func regionFromConfig(cfg *ini.File, name string) string {
	for _, candidate := range []string{name, "profile " + name} {
		if section, err := cfg.GetSection(candidate); err == nil {
			return keyOr(section, "region", NotSet)
		}
	}
	return NotSet
}

func keyOr(section *ini.Section, key, fallback string) string {
	if !section.HasKey(key) {
		return fallback
	}
	value := strings.TrimSpace(section.Key(key).String())
	if value == "" {
		return fallback
	}
	return value
}
