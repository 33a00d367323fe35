// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addStringFlagBindViper(cmd *cobra.Command,
	v *viper.Viper,
	name,
	defaultValue,
	usage,
	viperBindName string,
) error {
	cmd.PersistentFlags().String(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

func addUint32FlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue uint32,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Uint32(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

type cobraCmdFunc func(cmd *cobra.Command, args []string) error

// concatCobraCmdFuncs concatenates the given cobra command functions into a single function.
func concatCobraCmdFuncs(fs ...cobraCmdFunc) cobraCmdFunc {
	return func(cmd *cobra.Command, args []string) error {
		for _, f := range fs {
			if f != nil {
				if err := f(cmd, args); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func uintsToParaIDs(values []uint) []parachaintypes.ParaID {
	paraIDs := make([]parachaintypes.ParaID, len(values))
	for i, value := range values {
		paraIDs[i] = parachaintypes.ParaID(value)
	}
	return paraIDs
}
