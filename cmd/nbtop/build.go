/*
 * build.go, part of nbtop.
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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/nbtop"
	"github.com/rmera/nbtop/exgraph"
	"github.com/rmera/nbtop/sysdesc"
	"github.com/rmera/nbtop/top"
	"github.com/rmera/nbtop/topplot"
	"github.com/rmera/nbtop/tpz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <system.top|system.yaml>",
		Short: "Build a topology and print a summary of it",
		Long: `Reads a GROMACS topology (.top, .itp) or a YAML system description (.yaml, .yml),
builds the topology and prints a summary. The topology can be saved in the tpz format,
its exclusions written as a GROMACS section, and plotted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd.OutOrStdout(), args[0])
		},
	}
	f := cmd.Flags()
	f.StringSliceP("define", "D", nil, "symbols defined for #ifdef blocks (GROMACS input)")
	f.StringSliceP("include-dir", "I", nil, "directories to search for included files (GROMACS input)")
	f.Bool("follow-includes", true, "follow #include statements (GROMACS input)")
	f.StringP("out", "o", "", "write the topology to this tpz file")
	f.Int("level", 3, "zstd compression level for the tpz file")
	f.String("plot", "", "plot the exclusions to this file (png, svg, pdf)")
	f.String("exclusions", "", "write the exclusions as a GROMACS [ exclusions ] section to this file")
	for key, flag := range map[string]string{
		"build.defines":         "define",
		"build.include_dirs":    "include-dir",
		"build.follow_includes": "follow-includes",
		"build.out":             "out",
		"build.level":           "level",
		"build.plot":            "plot",
		"build.exclusions":      "exclusions",
	} {
		mustBind(a.v, key, f.Lookup(flag))
	}
	return cmd
}

func (a *app) readSystem(name string) (*nbtop.System, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".top", ".itp":
		O := top.DefaultOptions()
		O.Defines(a.v.GetStringSlice("build.defines"))
		O.IncludeDirs(a.v.GetStringSlice("build.include_dirs"))
		O.FollowIncludes(a.v.GetBool("build.follow_includes"))
		return top.ReadFile(name, O)
	case ".yaml", ".yml":
		return sysdesc.LoadFile(name)
	}
	return nil, fmt.Errorf("unknown input format for %s, expected .top, .itp, .yaml or .yml", name)
}

func (a *app) runBuild(w io.Writer, name string) error {
	S, err := a.readSystem(name)
	if err != nil {
		return err
	}
	a.log.Debug("read system", zap.String("file", name), zap.Int("registrations", len(S.Registrations)),
		zap.Int("particles", S.NumParticles()), zap.Bool("interactions", S.Interactions != nil))
	t, err := S.Build(nbtop.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("building %s: %w", name, err)
	}
	if err := summary(w, t); err != nil {
		return err
	}
	if out := a.v.GetString("build.out"); out != "" {
		if err := tpz.WriteFile(out, t, a.v.GetInt("build.level")); err != nil {
			return err
		}
		a.log.Info("wrote topology", zap.String("file", out))
	}
	if ex := a.v.GetString("build.exclusions"); ex != "" {
		if err := writeExclusions(ex, t); err != nil {
			return err
		}
		a.log.Info("wrote exclusions", zap.String("file", ex))
	}
	if p := a.v.GetString("build.plot"); p != "" {
		if err := topplot.ExclusionMap(t, filepath.Base(name), p); err != nil {
			return err
		}
		a.log.Info("wrote exclusion map", zap.String("file", p))
	}
	return nil
}

func writeExclusions(name string, t *nbtop.Topology) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := top.WriteExclusions(f, t); err != nil {
		f.Close()
		return fmt.Errorf("writing exclusions to %s: %w", name, err)
	}
	return f.Close()
}

// summary prints the main numbers of t.
func summary(w io.Writer, t *nbtop.Topology) error {
	_, table := t.NonbondedParameters()
	lines := []string{
		sf("particles: %d", t.NumParticles()),
		sf("particle types: %d", t.NumParticleTypes()),
		sf("total charge: %.4f", t.TotalCharge()),
		sf("total mass: %.4f", t.TotalMass()),
		sf("exclusion elements: %d", t.Exclusions().NumElements()),
		sf("exclusion groups: %d", len(exgraph.Groups(t))),
		sf("non-bonded table: %t", table),
	}
	for _, v := range t.ParticleTypes() {
		lines = append(lines, sf("  type %s", v))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

var sf = fmt.Sprintf
