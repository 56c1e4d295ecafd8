package cmd

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/pubcrypt/internal/crypto/elgamal"
	"github.com/smallyu/pubcrypt/internal/crypto/fingerprint"
)

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyShowCmd)

	keyShowCmd.Flags().StringP("key", "k", "", "Key file")
	keyShowCmd.Flags().String("expect", "", "Fail unless the key has this fingerprint")
	keyShowCmd.MarkFlagRequired("key")
}

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Inspect key files",
}

type keyInfo struct {
	Bits        int    `yaml:"bits"`
	Prime       uint64 `yaml:"prime"`
	Root        uint64 `yaml:"root"`
	Value       uint64 `yaml:"value"`
	Fingerprint string `yaml:"fingerprint"`
}

func describeKey(k elgamal.Key) keyInfo {
	data, _ := k.MarshalBinary()
	return keyInfo{
		Bits:        bits.Len64(k.Prime),
		Prime:       k.Prime,
		Root:        k.Root,
		Value:       k.Value,
		Fingerprint: fingerprint.String(fingerprint.Of(data)),
	}
}

// keyShowCmd represents the key show command
var keyShowCmd = &cobra.Command{
	Use:           "show",
	Short:         "Print a key and its fingerprint",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPath, _ := cmd.Flags().GetString("key")
		expect, _ := cmd.Flags().GetString("expect")

		k, err := readKey(keyPath)
		if err != nil {
			return err
		}

		if expect != "" {
			if err := checkFingerprint(k, expect); err != nil {
				return err
			}
		}

		out, err := yaml.Marshal(describeKey(k))
		if err != nil {
			return errors.Wrap(err, "failed to marshal key")
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func checkFingerprint(k elgamal.Key, expect string) error {
	want, err := fingerprint.Parse(expect)
	if err != nil {
		return errors.Wrapf(err, "invalid fingerprint %q", expect)
	}
	data, _ := k.MarshalBinary()
	if !fingerprint.Verify(want, data) {
		return fmt.Errorf("key fingerprint %s does not match %s", fingerprint.String(fingerprint.Of(data)), expect)
	}
	return nil
}
