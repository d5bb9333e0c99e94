package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("mediapress %s\n", Version)
			return
		case "compress":
			if err := runCompress(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "status":
			if err := runStatus(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "setup":
			if err := runSetup(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "open":
			if err := runOpen(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "size":
			if err := runSize(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("mediapress - shrink video and image files")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mediapress compress [options] <file>...   compress media files")
	fmt.Println("  mediapress status                         report FFmpeg availability")
	fmt.Println("  mediapress setup                          provision FFmpeg now")
	fmt.Println("  mediapress open <path>                    reveal a path in the file browser")
	fmt.Println("  mediapress size <path>                    print a file's size in bytes")
	fmt.Println("  mediapress --version                      print the version")
}
