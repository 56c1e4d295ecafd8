package cmd

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smallyu/pubcrypt/internal/ciphertext"
	"github.com/smallyu/pubcrypt/internal/config"
	"github.com/smallyu/pubcrypt/internal/crypto/ecb"
	"github.com/smallyu/pubcrypt/internal/crypto/elgamal"
)

func init() {
	rootCmd.AddCommand(cryptCmd)

	cryptCmd.Flags().BoolP("encrypt", "e", false, "Encrypt the input with a public key")
	cryptCmd.Flags().BoolP("decrypt", "d", false, "Decrypt the input with a private key")
	cryptCmd.Flags().StringP("input", "i", "", "Input file")
	cryptCmd.Flags().StringP("output", "o", "", "Output file")
	cryptCmd.Flags().StringP("key", "k", "", "Key file")
	cryptCmd.Flags().StringP("format", "f", string(ciphertext.FormatBinary),
		fmt.Sprintf("Ciphertext format (%s)", strings.Join(ciphertext.Formats(), ", ")))
	cryptCmd.MarkFlagsMutuallyExclusive("encrypt", "decrypt")
	cryptCmd.MarkFlagsOneRequired("encrypt", "decrypt")
	cryptCmd.MarkFlagRequired("input")
	cryptCmd.MarkFlagRequired("output")
	cryptCmd.MarkFlagRequired("key")
	cryptCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ciphertext.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	viper.BindPFlag("crypt.format", cryptCmd.Flags().Lookup("format"))
}

// cryptCmd represents the crypt command
var cryptCmd = &cobra.Command{
	Use:           "crypt",
	Short:         "Encrypt or decrypt a file",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfig()
		if err != nil {
			return err
		}

		decrypt, _ := cmd.Flags().GetBool("decrypt")
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		keyPath, _ := cmd.Flags().GetString("key")

		if decrypt {
			return decryptFile(input, output, keyPath, conf.Format())
		}
		return encryptFile(rand.Reader, input, output, keyPath, conf.Format())
	},
}

func encryptFile(random io.Reader, input, output, keyPath string, format ciphertext.Format) error {
	k, err := readKey(keyPath)
	if err != nil {
		return err
	}
	pub := &elgamal.PublicKey{Key: k}
	if err := pub.Validate(); err != nil {
		return errors.Wrapf(err, "invalid public key %s", keyPath)
	}

	return transform(input, output, func(src io.Reader, dst io.Writer) error {
		w, err := ciphertext.NewWriter(dst, format)
		if err != nil {
			return err
		}
		return ecb.Encrypt(random, src, w, pub)
	})
}

func decryptFile(input, output, keyPath string, format ciphertext.Format) error {
	k, err := readKey(keyPath)
	if err != nil {
		return err
	}
	priv := &elgamal.PrivateKey{Key: k}
	if err := priv.Validate(); err != nil {
		return errors.Wrapf(err, "invalid private key %s", keyPath)
	}

	return transform(input, output, func(src io.Reader, dst io.Writer) error {
		r, err := ciphertext.NewReader(src, format)
		if err != nil {
			return err
		}
		bw := bufio.NewWriter(dst)
		if err := ecb.Decrypt(r, bw, priv); err != nil {
			return err
		}
		return bw.Flush()
	})
}

// transform streams input through fn into output. The output file is removed
// if fn fails.
func transform(input, output string, fn func(io.Reader, io.Writer) error) error {
	in, err := os.Open(input)
	if err != nil {
		return errors.Wrapf(err, "failed to open input %s", input)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "failed to create output %s", output)
	}

	if err := fn(in, out); err != nil {
		out.Close()
		os.Remove(output)
		return errors.Wrapf(err, "failed to process %s", input)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "failed to close output %s", output)
	}

	if info, err := os.Stat(output); err == nil {
		log.WithFields(log.Fields{
			"input":  input,
			"output": output,
			"size":   humanize.Bytes(uint64(info.Size())),
		}).Info("Done")
	}

	return nil
}
