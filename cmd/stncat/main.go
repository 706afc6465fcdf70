// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// stncat prints the attributes of a Simple Text Notation file, one per
// line in name order.
package main

import (
	"fmt"
	"os"

	"github.com/yourbase/stn"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("USAGE: %s [filename]\n", os.Args[0])
		fmt.Println("The attributes and their values are printed as follows:")
		fmt.Println("attr: [attribute], val: [value]")
		return
	}
	attrs := stn.ParseFile(os.Args[1])
	for _, name := range attrs.Keys() {
		fmt.Printf("attr: %s, val: %s\n", name, attrs.Get(name))
	}
}
