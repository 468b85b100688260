// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/classfmt/classfile"
)

var (
	verbose          bool
	wantConstantPool bool
	wantFields       bool
	wantMethods      bool
	wantCode         bool
	wantAttributes   bool
	wantAll          bool
)

func prettyPrint(v any) string {
	buf, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		log.Printf("json marshal error: %v", err)
		return fmt.Sprintf("%+v", v)
	}
	return string(buf)
}

func dumpClass(path string) {
	if verbose {
		log.Printf("processing %s", path)
	}

	cf, err := classfile.Open(path, nil)
	if err != nil {
		log.Printf("error opening %s: %v", path, err)
		return
	}
	defer cf.Close()

	name, _ := cf.ClassName()
	super, _ := cf.SuperClassName()
	fmt.Printf("%s extends %s\n", name, super)

	if wantConstantPool || wantAll {
		fmt.Println(prettyPrint(cf.ConstantPool.Entries))
	}
	if wantFields || wantAll {
		fmt.Println(prettyPrint(cf.Fields))
	}
	if wantMethods || wantAll {
		fmt.Println(prettyPrint(cf.Methods))
	}
	if wantCode || wantAll {
		for i := range cf.Methods {
			m := &cf.Methods[i]
			mName, _ := cf.MethodName(m)
			if c := m.Code(); c != nil {
				fmt.Printf("Code for %s:\n%s\n", mName, prettyPrint(c.Instructions))
			}
		}
	}
	if wantAttributes || wantAll {
		fmt.Println(prettyPrint(cf.Attributes))
	}
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dump(cmd *cobra.Command, args []string) {
	target := args[0]
	if !isDirectory(target) {
		dumpClass(target)
		return
	}

	var files []string
	filepath.Walk(target, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && filepath.Ext(path) == ".class" {
			files = append(files, path)
		}
		return nil
	})
	for _, f := range files {
		dumpClass(f)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "classdump",
		Short: "A Java class file parser",
		Long:  "Decodes the JVM .class file format: constant pool, fields, methods, and bytecode.",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("classdump version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [file or directory]",
		Short: "Dumps the structure of a class file",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVar(&wantConstantPool, "constant-pool", false, "dump the constant pool")
	dumpCmd.Flags().BoolVar(&wantFields, "fields", false, "dump fields")
	dumpCmd.Flags().BoolVar(&wantMethods, "methods", false, "dump methods")
	dumpCmd.Flags().BoolVar(&wantCode, "code", false, "dump decoded bytecode for each method")
	dumpCmd.Flags().BoolVar(&wantAttributes, "attributes", false, "dump class-level attributes")
	dumpCmd.Flags().BoolVar(&wantAll, "all", false, "dump everything")

	rootCmd.AddCommand(versionCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
