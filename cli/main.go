package main

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/docopt/docopt-go"

	"github.com/swiftlipi/singlish/singlish"
)

// set via linker flags
var version = "unreleased"

func loadEngine(arguments docopt.Opts) *singlish.Engine {
	config := singlish.DefaultConfig()

	if filename, ok := arguments["--config"].(string); ok {
		loaded, err := singlish.LoadConfig(filename)
		if err != nil {
			log.Fatal("Config file did not load successfully: ", err.Error())
		}
		config = *loaded
	}

	if vstPath, ok := arguments["--vst"].(string); ok {
		config.VSTPath = vstPath
	}
	if arguments["--debug"].(bool) {
		config.Debug = true
	}

	engine, err := singlish.Init(config)
	if err != nil {
		log.Fatal(err)
	}
	return engine
}

// Every line read is a new snapshot of the buffer. Outputs are printed
// as the session publishes them.
func watch(engine *singlish.Engine) {
	session := engine.NewSession(context.Background())

	session.Subscribe(func(output string) {
		fmt.Println(output)
	})

	var (
		last singlish.Generation
		err  error
	)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		last, err = session.Submit(scanner.Text())
		if err != nil {
			log.Fatal(err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}

	if last > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err = session.Wait(ctx, last)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
	}

	session.Close()
}

func main() {
	usage := `singlish.
Usage:
	singlish transliterate [--config <filename>] [--vst <file>] [--debug] <text>...
	singlish watch [--config <filename>] [--vst <file>] [--debug]
	singlish compile <vst>
	singlish train <vst> <pattern> <word>
	singlish unlearn <vst> <pattern>
	singlish schemes <dir>
	singlish -h | --help
	singlish --version
Options:
	--config <filename>  Configuration file to use.
	--vst <file>         Read rules and exceptions from this VST.
	--debug              Print classified segments.
	-h --help            Show this screen.
	--version            Show version.`

	arguments, _ := docopt.ParseArgs(usage, nil, version)

	if arguments["transliterate"].(bool) {
		engine := loadEngine(arguments)
		defer engine.Close()

		text := strings.Join(arguments["<text>"].([]string), " ")
		fmt.Println(engine.Transliterate(text))
	} else if arguments["watch"].(bool) {
		engine := loadEngine(arguments)
		defer engine.Close()

		watch(engine)
	} else if arguments["compile"].(bool) {
		vstPath := arguments["<vst>"].(string)

		err := singlish.CompileScheme(singlish.SinglishScheme(), vstPath)
		if err != nil {
			log.Fatal("Error while compiling scheme:", err.Error())
		}
		fmt.Printf("Compiled %s\n", vstPath)
	} else if arguments["train"].(bool) || arguments["unlearn"].(bool) {
		vm, err := singlish.VMInit(arguments["<vst>"].(string))
		if err != nil {
			log.Fatal(err)
		}
		defer vm.Close()

		pattern := arguments["<pattern>"].(string)

		if arguments["train"].(bool) {
			word := arguments["<word>"].(string)
			err = vm.Train(pattern, word)
			if err == nil {
				fmt.Printf("Trained %s => %s\n", pattern, word)
			}
		} else {
			err = vm.Unlearn(pattern)
			if err == nil {
				fmt.Printf("Unlearnt %s\n", pattern)
			}
		}
		if err != nil {
			log.Fatal(err)
		}
	} else if arguments["schemes"].(bool) {
		details, err := singlish.GetAllSchemeDetails(arguments["<dir>"].(string))
		if err != nil {
			log.Fatal(err)
		}
		for _, sd := range details {
			fmt.Printf("%s\t%s\t%s\t%s\n", sd.Identifier, sd.LangCode, sd.DisplayName, sd.CompiledDate)
		}
	}
}
