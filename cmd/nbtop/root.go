/*
 * root.go, part of nbtop.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// app holds what the commands share: the configuration and the logger.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}
	var cfgFile string
	root := &cobra.Command{
		Use:           "nbtop",
		Short:         "Build topologies for non-bonded force kernels",
		Long:          `nbtop reads GROMACS topologies or YAML system descriptions and builds the flat particle topology (charges, masses, type ids, exclusions) that non-bonded kernels use.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(cfgFile); err != nil {
				return err
			}
			a.log = newLogger(cmd.ErrOrStderr(), a.v.GetBool("verbose"))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug information to stderr")
	mustBind(a.v, "verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newBuildCmd(a), newInfoCmd(a))
	return root
}

// mustBind binds the config key to flag. It panics if the flag doesn't
// exist, as that can only be a mistake in the command definitions.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		panic(sf("no flag for config key %s", key))
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(sf("binding flag %s to %s: %v", flag.Name, key, err))
	}
}

// initConfig sets the defaults, reads the config file, if given, and
// the NBTOP_ environment variables.
func (a *app) initConfig(cfgFile string) error {
	a.v.SetDefault("build.level", 3)
	a.v.SetDefault("build.follow_includes", true)
	a.v.SetEnvPrefix("NBTOP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	if cfgFile == "" {
		return nil
	}
	a.v.SetConfigFile(cfgFile)
	if err := a.v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", cfgFile, err)
	}
	return nil
}

// newLogger returns a console logger writing to w, at debug level if verbose
// is true, and at warn level otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}
