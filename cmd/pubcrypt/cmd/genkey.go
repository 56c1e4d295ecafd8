package cmd

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smallyu/pubcrypt/internal/config"
	"github.com/smallyu/pubcrypt/internal/crypto/elgamal"
	"github.com/smallyu/pubcrypt/internal/crypto/fingerprint"
)

func init() {
	rootCmd.AddCommand(genkeyCmd)

	genkeyCmd.Flags().String("pub", "", "Path to write the public key")
	genkeyCmd.Flags().String("priv", "", "Path to write the private key")
	genkeyCmd.Flags().BoolP("armor", "a", false, "Write keys as decimal text")
	genkeyCmd.Flags().Uint64("min", elgamal.PrimeMin, "Smallest acceptable prime")
	genkeyCmd.Flags().Uint64("max", elgamal.PrimeMax, "Largest acceptable prime")
	genkeyCmd.MarkFlagRequired("pub")
	genkeyCmd.MarkFlagRequired("priv")

	viper.BindPFlag("genkey.armor", genkeyCmd.Flags().Lookup("armor"))
	viper.BindPFlag("genkey.min", genkeyCmd.Flags().Lookup("min"))
	viper.BindPFlag("genkey.max", genkeyCmd.Flags().Lookup("max"))
}

// genkeyCmd represents the genkey command
var genkeyCmd = &cobra.Command{
	Use:           "genkey",
	Short:         "Generate a key pair",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfig()
		if err != nil {
			return err
		}

		pubPath, _ := cmd.Flags().GetString("pub")
		privPath, _ := cmd.Flags().GetString("priv")

		log.WithFields(log.Fields{
			"min": conf.Genkey.Min,
			"max": conf.Genkey.Max,
		}).Info("Searching for prime")

		kp, err := genKeyFiles(rand.Reader, pubPath, privPath, conf.Genkey.Min, conf.Genkey.Max, conf.Genkey.Armor)
		if err != nil {
			return err
		}

		pub, _ := kp.Public.MarshalBinary()
		log.WithFields(log.Fields{
			"prime":       kp.Public.Prime,
			"fingerprint": fingerprint.String(fingerprint.Of(pub)),
		}).Info("Generated key pair")

		return nil
	},
}

func genKeyFiles(random io.Reader, pubPath, privPath string, min, max uint64, armor bool) (*elgamal.KeyPair, error) {
	kp, err := elgamal.GenerateKeyInRange(random, min, max)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate key pair")
	}

	if err := writeKey(pubPath, kp.Public.Key, armor, 0644); err != nil {
		return nil, err
	}
	if err := writeKey(privPath, kp.Private.Key, armor, 0600); err != nil {
		return nil, err
	}

	return kp, nil
}

func writeKey(path string, k elgamal.Key, armor bool, perm os.FileMode) error {
	var data []byte
	if armor {
		text, _ := k.MarshalText()
		data = append(text, '\n')
	} else {
		data, _ = k.MarshalBinary()
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return errors.Wrapf(err, "failed to write key %s", path)
	}
	log.WithField("path", path).Debugf("Wrote %d byte key", len(data))

	return nil
}

func readKey(path string) (elgamal.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return elgamal.Key{}, errors.Wrapf(err, "failed to read key %s", path)
	}
	k, err := elgamal.ParseKey(data)
	if err != nil {
		return elgamal.Key{}, errors.Wrapf(err, "failed to parse key %s", path)
	}
	return k, nil
}
