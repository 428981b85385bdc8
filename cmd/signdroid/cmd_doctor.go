package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/signdroid/signdroid/internal/domain-adapters/gateways"
)

func runDoctor(_ context.Context, args []string) {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	var (
		buildTools = fs.String("build-tools", "", "Build-tools version (env: ANDROID_BUILD_TOOLS_VERSION, default "+gateways.DefaultBuildToolsVersion+")")
		sdkRoot    = fs.String("sdk-root", "", "Android SDK root (env: ANDROID_HOME, required)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: signdroid doctor [options]

Resolve the external signing tools for the current configuration and print
their paths. Exits non-zero when the environment is misconfigured.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	fallbackToEnv(buildTools, "ANDROID_BUILD_TOOLS_VERSION")
	fallbackToEnv(sdkRoot, "ANDROID_HOME")

	locator := gateways.NewToolLocator(gateways.ToolLocatorConfig{
		SDKRoot:           *sdkRoot,
		BuildToolsVersion: *buildTools,
	})

	tools, err := locator.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("zipalign:  %s\n", tools.ZipAlign)
	fmt.Printf("apksigner: %s\n", tools.ApkSigner)
	fmt.Printf("jarsigner: %s\n", tools.JarSigner)
}
