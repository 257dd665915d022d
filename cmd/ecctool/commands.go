package main

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

func decodeHex(what, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", what)
	}
	return b, nil
}

func (t *tool) privateKey(s string) (ecc.PrivateKey, error) {
	b, err := decodeHex("private key", s)
	if err != nil {
		return nil, err
	}
	defer clear(b)
	return t.cfg.family.ParsePrivate(b)
}

func (t *tool) publicKey(s string) (ecc.PublicKey, error) {
	b, err := decodeHex("public key", s)
	if err != nil {
		return nil, err
	}
	return t.cfg.family.ParsePublic(b)
}

// digest hashes message with the configured hash, or decodes it as a hex
// digest when prehashed is set.
func (t *tool) digest(message string, prehashed bool) ([]byte, error) {
	if prehashed {
		return decodeHex("message hash", message)
	}
	return t.cfg.hash.Sum([]byte(message)), nil
}

func publicBytes(pub ecc.PublicKey, compressed bool) []byte {
	if compressed {
		return pub.CompressedBytes()
	}
	return pub.Bytes()
}

func printKeyPair(cmd *cobra.Command, k ecc.PrivateKey, compressed bool) error {
	b, err := k.Bytes()
	if err != nil {
		return err
	}
	defer clear(b)
	pub, err := k.PublicKey()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "private %x\npublic %x\n", b, publicBytes(pub, compressed))
	return nil
}

func (t *tool) keygenCmd() *cobra.Command {
	var compressed bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random key pair.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := t.cfg.family.Generate()
			if err != nil {
				return err
			}
			defer k.Clear()
			logger.Infof("generated %s key", k.Curve().Name())
			return printKeyPair(cmd, k, compressed)
		},
	}
	cmd.Flags().BoolVar(&compressed, "compressed", false, "print the compressed public key")
	return cmd
}

func (t *tool) deriveCmd() *cobra.Command {
	var (
		personalization string
		sequence        int32
		compressed      bool
	)
	cmd := &cobra.Command{
		Use:   "derive <seed-hex>",
		Short: "Derive a key pair from a seed through the HMAC generator.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := decodeHex("seed", args[0])
			if err != nil {
				return err
			}
			defer clear(seed)
			k, err := t.cfg.family.Derive(t.cfg.hash, seed, []byte(personalization), sequence, t.cfg.iterations)
			if err != nil {
				return err
			}
			defer k.Clear()
			logger.Infof("derived %s key with sequence %d", k.Curve().Name(), sequence)
			return printKeyPair(cmd, k, compressed)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&personalization, "personalization", "", "personalization string")
	flags.Int32Var(&sequence, "sequence", 0, "derivation sequence number")
	flags.BoolVar(&compressed, "compressed", false, "print the compressed public key")
	return cmd
}

func (t *tool) pubkeyCmd() *cobra.Command {
	var compressed bool
	cmd := &cobra.Command{
		Use:   "pubkey <private-hex>",
		Short: "Print the public key of a private key.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := t.privateKey(args[0])
			if err != nil {
				return err
			}
			defer k.Clear()
			pub, err := k.PublicKey()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", publicBytes(pub, compressed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&compressed, "compressed", false, "print the compressed public key")
	return cmd
}

func (t *tool) signCmd() *cobra.Command {
	var prehashed bool
	cmd := &cobra.Command{
		Use:   "sign <private-hex> <message>",
		Short: "Sign the hash of a message.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := t.privateKey(args[0])
			if err != nil {
				return err
			}
			defer k.Clear()
			hash, err := t.digest(args[1], prehashed)
			if err != nil {
				return err
			}

			var sig signature.Pair
			if t.cfg.deterministic {
				sig, err = k.SignHashDeterministic(hash, t.cfg.hash)
			} else {
				sig, err = k.SignHash(hash)
			}
			if err != nil {
				return err
			}
			codec, err := t.codec()
			if err != nil {
				return err
			}
			out, err := codec.Encode(sig)
			if err != nil {
				return err
			}
			logger.Infof("signed %d byte hash with %s", len(hash), k.Curve().Name())
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&prehashed, "prehashed", false, "treat the message as a hex encoded hash")
	return cmd
}

func (t *tool) verifyCmd() *cobra.Command {
	var prehashed bool
	cmd := &cobra.Command{
		Use:   "verify <public-hex> <message> <signature-hex>",
		Short: "Verify a signature over the hash of a message.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := t.publicKey(args[0])
			if err != nil {
				return err
			}
			hash, err := t.digest(args[1], prehashed)
			if err != nil {
				return err
			}
			raw, err := decodeHex("signature", args[2])
			if err != nil {
				return err
			}
			codec, err := t.codec()
			if err != nil {
				return err
			}
			sig, err := codec.Decode(raw)
			if err != nil {
				return err
			}
			if !pub.VerifyHash(hash, sig) {
				return ecc.NewOpError("verify", pub.Curve(), ecc.ErrInvalidSignature)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().BoolVar(&prehashed, "prehashed", false, "treat the message as a hex encoded hash")
	return cmd
}

func (t *tool) ecdhCmd() *cobra.Command {
	var hashed bool
	cmd := &cobra.Command{
		Use:   "ecdh <private-hex> <peer-public-hex>",
		Short: "Compute the shared secret with a peer key.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := t.privateKey(args[0])
			if err != nil {
				return err
			}
			defer k.Clear()
			peer, err := t.publicKey(args[1])
			if err != nil {
				return err
			}
			shared, err := k.SharedSecret(peer)
			if err != nil {
				return err
			}
			defer clear(shared)
			if hashed {
				shared = t.cfg.hash.Sum(shared)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", shared)
			return nil
		},
	}
	cmd.Flags().BoolVar(&hashed, "hashed", false, "print the configured hash of the shared secret")
	return cmd
}

func (t *tool) tweakCmd() *cobra.Command {
	var public bool
	cmd := &cobra.Command{
		Use:   "tweak <key-hex> <tweak-hex>",
		Short: "Add a tweak scalar to a private key, or tweak*G to a public key.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw, err := decodeHex("tweak", args[1])
			if err != nil {
				return err
			}
			if public {
				pub, err := t.publicKey(args[0])
				if err != nil {
					return err
				}
				tweaked, err := t.cfg.family.TweakPublic(pub, tw)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%x\n", tweaked.Bytes())
				return nil
			}

			k, err := t.privateKey(args[0])
			if err != nil {
				return err
			}
			defer k.Clear()
			tweaked, err := t.cfg.family.Tweak(k, tw)
			if err != nil {
				return err
			}
			defer tweaked.Clear()
			return printKeyPair(cmd, tweaked, false)
		},
	}
	cmd.Flags().BoolVar(&public, "public", false, "the key argument is a public key")
	return cmd
}
