package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody/crypto"
)

const defaultHRP = "cust"

func keygenCmd(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("keygen", flag.ExitOnError)
	hrp := fl.String("hrp", defaultHRP, "human readable part of the bech32 address")
	if err := fl.Parse(args); err != nil {
		return err
	}

	key := crypto.GenPrivKeyEd25519()
	addr := key.PublicKey().Address()
	b32, err := addr.Bech32(*hrp)
	if err != nil {
		return fmt.Errorf("cannot encode address: %s", err)
	}
	fmt.Fprintf(out, "private key: %s\n", hex.EncodeToString(key))
	fmt.Fprintf(out, "public key:  %s\n", hex.EncodeToString(key.PublicKey()))
	fmt.Fprintf(out, "address:     %s\n", addr)
	fmt.Fprintf(out, "bech32:      %s\n", b32)
	return nil
}
