package main

import "github.com/Mikastiv/ft-ssl/internal/cipherio"

// commands maps each subcommand name to its run function. Kept as a
// single table, matching the reference tool's static command list in
// main.c, so adding a subcommand is a one-line change.
var commands = map[string]func([]string) error{
	"md5":       digestCommand("md5"),
	"sha224":    digestCommand("sha224"),
	"sha256":    digestCommand("sha256"),
	"sha384":    digestCommand("sha384"),
	"sha512":    digestCommand("sha512"),
	"whirlpool": digestCommand("whirlpool"),

	"base64": base64Command,

	"des":       cipherCommand(cipherio.FamilyDES, ""),
	"des-ecb":   cipherCommand(cipherio.FamilyDES, "ecb"),
	"des-cbc":   cipherCommand(cipherio.FamilyDES, "cbc"),
	"des-cfb":   cipherCommand(cipherio.FamilyDES, "cfb"),
	"des-ofb":   cipherCommand(cipherio.FamilyDES, "ofb"),
	"des-pcbc":  cipherCommand(cipherio.FamilyDES, "pcbc"),
	"des3":      cipherCommand(cipherio.FamilyDES3, ""),
	"des3-ecb":  cipherCommand(cipherio.FamilyDES3, "ecb"),
	"des3-cbc":  cipherCommand(cipherio.FamilyDES3, "cbc"),
	"des3-cfb":  cipherCommand(cipherio.FamilyDES3, "cfb"),
	"des3-ofb":  cipherCommand(cipherio.FamilyDES3, "ofb"),
	"des3-pcbc": cipherCommand(cipherio.FamilyDES3, "pcbc"),

	"genrsa": genrsaCommand,
	"rsa":    rsaCommand,
}
