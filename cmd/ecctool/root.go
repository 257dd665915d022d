package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/family"
	"github.com/smallyu/go-ecc/internal/logging"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

const (
	envPrefix = "ECC"

	keyConfig        = "config"
	keyCurve         = "curve"
	keyHash          = "hash"
	keyFormat        = "format"
	keyDeterministic = "deterministic"
	keyIterations    = "iterations"
	keyLogLevel      = "log-level"
	keyLogFormat     = "log-format"

	defaultIterations = 2048
)

var logger = logging.MustGetLogger("ecctool")

// settings is the resolved configuration of one invocation.
type settings struct {
	family        family.Family
	hash          ecc.Hash
	format        signature.Format
	deterministic bool
	iterations    int
}

// tool carries the configuration shared by every subcommand.
type tool struct {
	v   *viper.Viper
	cfg settings
}

func newRootCmd() *cobra.Command {
	t := &tool{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "ecctool",
		Short:        "Elliptic curve keys, signatures and ECDH.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return t.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	addSettingsFlags(flags)
	t.v.SetEnvPrefix(envPrefix)
	t.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	t.v.AutomaticEnv()
	if err := t.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		t.keygenCmd(),
		t.deriveCmd(),
		t.pubkeyCmd(),
		t.signCmd(),
		t.verifyCmd(),
		t.ecdhCmd(),
		t.tweakCmd(),
	)
	return cmd
}

// addSettingsFlags defines the flags shared by every subcommand. Each one
// can also be set as ECC_<NAME> or in the config file.
func addSettingsFlags(flags *pflag.FlagSet) {
	flags.String(keyConfig, "", "YAML configuration file")
	flags.String(keyCurve, "secp256k1", "curve name ("+strings.Join(curves.Names(), ", ")+")")
	flags.String(keyHash, ecc.SHA256.Name, "message hash ("+strings.Join(ecc.HashNames(), ", ")+")")
	flags.String(keyFormat, string(signature.FormatCompact), "signature format (compact, der)")
	flags.Bool(keyDeterministic, false, "derive signature nonces from the key and the hash")
	flags.Int(keyIterations, defaultIterations, "PBKDF2 iterations of the derive command")
	flags.String(keyLogLevel, "warn", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, logging.FormatConsole, "log format (console, json)")
}

// load reads the optional config file, sets up logging and resolves the
// curve, hash and format names.
func (t *tool) load(cmd *cobra.Command) error {
	if path := t.v.GetString(keyConfig); path != "" {
		t.v.SetConfigFile(path)
		if err := t.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	err := logging.Init(logging.Config{
		Level:  t.v.GetString(keyLogLevel),
		Format: t.v.GetString(keyLogFormat),
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	fam, err := family.ByName(t.v.GetString(keyCurve))
	if err != nil {
		return err
	}
	h, err := ecc.HashByName(t.v.GetString(keyHash))
	if err != nil {
		return err
	}
	f, err := signature.ParseFormat(t.v.GetString(keyFormat))
	if err != nil {
		return err
	}
	iterations := t.v.GetInt(keyIterations)
	if iterations < 1 {
		return errors.Errorf("iterations must be positive, got %d", iterations)
	}

	t.cfg = settings{
		family:        fam,
		hash:          h,
		format:        f,
		deterministic: t.v.GetBool(keyDeterministic),
		iterations:    iterations,
	}
	logger.Debugf("curve %s, hash %s, format %s", fam.Curve().Name(), h.Name, f)
	return nil
}

func (t *tool) codec() (signature.Codec, error) {
	return signature.NewCodec(t.cfg.format, t.cfg.family.Curve().ScalarSize())
}
