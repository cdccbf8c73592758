package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/atomicstack/bootmenu/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfigDir   = "BOOTMENU_CONFIG_DIR"
	envConfigFile  = "BOOTMENU_CONFIG"
	envVolumes     = "BOOTMENU_VOLUMES"
	envStateDir    = "BOOTMENU_STATE_DIR"
	envBackend     = "BOOTMENU_BACKEND"
	envFramebuffer = "BOOTMENU_FRAMEBUFFER"
	envInputDevice = "BOOTMENU_INPUT_DEVICE"
	envWidth       = "BOOTMENU_WIDTH"
	envHeight      = "BOOTMENU_HEIGHT"
	envLanguage    = "BOOTMENU_LANG"
	envTrace       = "BOOTMENU_TRACE"
	envLogFile     = "BOOTMENU_LOG_FILE"
)

// Register adds the flags to fs with defaults taken from environ. The
// returned function builds the Config once fs has been parsed.
func Register(fs *pflag.FlagSet, environ []string) func(args []string) Config {
	env := parseEnv(environ)

	configDir := fs.String("config-dir", envOrDefault(env, envConfigDir, "."), "directory holding the configuration files")
	configFile := fs.String("config", envOrDefault(env, envConfigFile, "refind.conf"), "primary configuration file name")
	volumes := fs.StringSlice("volumes", envOrList(env, envVolumes), "directories to use as volumes instead of the host's partitions (label=dir)")
	stateDir := fs.String("state-dir", envOrDefault(env, envStateDir, ""), "directory for persistent variables and screenshots")
	backend := fs.String("backend", envOrDefault(env, envBackend, app.BackendAuto), "display back-end: auto, terminal or framebuffer")
	framebuffer := fs.String("framebuffer", envOrDefault(env, envFramebuffer, "/dev/fb0"), "framebuffer device for the graphical back-end")
	inputDevice := fs.String("input-device", envOrDefault(env, envInputDevice, ""), "evdev keyboard device (empty finds one)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "terminal width in cells (0 uses the terminal size)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "terminal height in rows (0 uses the terminal size)")
	lang := fs.String("lang", envOrDefault(env, envLanguage, ""), "language for menu text (BCP 47 tag)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	return func(args []string) Config {
		flags := make(map[string]string)
		fs.VisitAll(func(f *pflag.Flag) {
			flags[f.Name] = f.Value.String()
		})
		return Config{
			App: app.Config{
				ConfigDir:   *configDir,
				ConfigFile:  *configFile,
				Volumes:     append([]string(nil), *volumes...),
				StateDir:    *stateDir,
				Backend:     *backend,
				Framebuffer: *framebuffer,
				InputDevice: *inputDevice,
				Width:       *width,
				Height:      *height,
				Language:    *lang,
			},
			Logging: Logging{
				FilePath: *logFile,
				Trace:    *trace,
			},
			Flags: flags,
			Args:  append([]string(nil), args...),
		}
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("bootmenu", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	build := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return build(args), nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrList splits a comma-separated value; volume roots never contain
// commas in practice.
func envOrList(env map[string]string, key string) []string {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return "--" + name
		}
		return f.Name
	})
	return v
}

// Validate checks the application options against their constraints and
// names the offending flags.
func Validate(cfg Config) error {
	err := validate.Struct(cfg.App)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s must not be empty", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s (got %q)", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s (got %v)", field, fe.Param(), fe.Value())
	case "bcp47_language_tag":
		return fmt.Sprintf("%s is not a language tag (got %q)", field, fe.Value())
	}
	return fmt.Sprintf("%s fails %s", field, fe.Tag())
}
