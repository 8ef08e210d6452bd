package acctconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// cacheFileName mirrors original_source/radi.py's PICKLED_FILE_NAME
// (".{basename}.dat" next to the binary), replacing pickle with YAML.
const cacheFileName = ".radacct.yaml"

// cachedSettings is the YAML-serializable subset of Settings. Action and
// Delay are stored as plain fields (int/seconds) since viper/yaml decode
// custom types more awkwardly than primitives.
type cachedSettings struct {
	DictPath     string     `yaml:"dict_path"`
	DictFile     string     `yaml:"dict_file"`
	RadiusDest   string     `yaml:"radius_dest"`
	RadiusPort   int        `yaml:"radius_port"`
	RadiusSecret string     `yaml:"radius_secret"`
	Username     string     `yaml:"username"`
	IMSI         string     `yaml:"imsi"`
	IMEI         string     `yaml:"imei"`
	FramedIP     string     `yaml:"framed_ip"`
	FramedMask   int        `yaml:"framed_mask"`
	CallingID    string     `yaml:"calling_id"`
	CalledID     string     `yaml:"called_id"`
	SubsLocInfo  string     `yaml:"subs_loc_info"`
	DelaySeconds float64    `yaml:"delay_seconds"`
	Action       int        `yaml:"action"`
	ExtraAVPs    []ExtraAVP `yaml:"extra_avps"`
}

func toCached(s Settings) cachedSettings {
	return cachedSettings{
		DictPath:     s.DictPath,
		DictFile:     s.DictFile,
		RadiusDest:   s.RadiusDest,
		RadiusPort:   s.RadiusPort,
		RadiusSecret: s.RadiusSecret,
		Username:     s.Username,
		IMSI:         s.IMSI,
		IMEI:         s.IMEI,
		FramedIP:     s.FramedIP,
		FramedMask:   s.FramedMask,
		CallingID:    s.CallingID,
		CalledID:     s.CalledID,
		SubsLocInfo:  s.SubsLocInfo,
		DelaySeconds: s.Delay.Seconds(),
		Action:       int(s.Action),
		ExtraAVPs:    s.ExtraAVPs,
	}
}

func (c cachedSettings) toSettings() Settings {
	return Settings{
		DictPath:     c.DictPath,
		DictFile:     c.DictFile,
		RadiusDest:   c.RadiusDest,
		RadiusPort:   c.RadiusPort,
		RadiusSecret: c.RadiusSecret,
		Username:     c.Username,
		IMSI:         c.IMSI,
		IMEI:         c.IMEI,
		FramedIP:     c.FramedIP,
		FramedMask:   c.FramedMask,
		CallingID:    c.CallingID,
		CalledID:     c.CalledID,
		SubsLocInfo:  c.SubsLocInfo,
		Delay:        time.Duration(c.DelaySeconds * float64(time.Second)),
		Action:       Action(c.Action),
		ExtraAVPs:    c.ExtraAVPs,
	}
}

// cachePath returns the hidden sibling file path, rooted at dir (the
// working directory of the invocation).
func cachePath(dir string) string {
	return filepath.Join(dir, cacheFileName)
}

// LoadCached reads the last-used configuration cached in dir, returning
// (settings, found, err). A missing file is not an error: found is false
// and the caller should fall back to Default().
func LoadCached(dir string) (Settings, bool, error) {
	path := cachePath(dir)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return Settings{}, false, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return Settings{}, false, nil
		}
		return Settings{}, false, err
	}

	// Decode by the yaml tags SaveCached wrote; viper's default mapstructure
	// tags would leave the snake_case keys unmatched.
	var cached cachedSettings
	if err := v.Unmarshal(&cached, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }); err != nil {
		return Settings{}, false, err
	}
	return cached.toSettings(), true, nil
}

// RemoveCached deletes the hidden cache file in dir, if present (spec
// supplement: -L/--clean). A missing file is not an error.
func RemoveCached(dir string) error {
	err := os.Remove(cachePath(dir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SaveCached persists s to the hidden sibling file in dir, grounded on
// marmos91-dittofs's SaveConfig (yaml.Marshal, restrictive file mode since
// the cache may carry a shared secret).
func SaveCached(dir string, s Settings) error {
	data, err := yaml.Marshal(toCached(s))
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath(dir), data, 0600)
}
