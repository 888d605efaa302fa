package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/c-bata/go-prompt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/sdk"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/sign"
)

// probeConfig holds the CLI-only settings read next to sdk.Config.
type probeConfig struct {
	OwnerKey string `env:"SAFE_OWNER_KEY"`
}

func main() {
	bootLogger := log.NewZapLogger(log.Config{Level: log.LevelWarn})
	conf, err := loadConfig(bootLogger, os.Args[1:])
	if err != nil {
		fmt.Printf("Failed to load configuration: %s\n", err.Error())
		fmt.Printf("Usage: safe-probe [host_ws_url]\n")
		return
	}

	lg := log.NewZapLogger(conf.Log).WithName("safe-probe")
	ctx, cancel := context.WithCancel(log.SetContextLogger(context.Background(), lg))
	defer cancel()

	apps, err := sdk.Connect(ctx, conf)
	if err != nil {
		fmt.Printf("Failed to connect to host: %s\n", err.Error())
		return
	}
	defer apps.Close()

	operator := NewOperator(ctx, apps, os.Stdout)
	owner, err := loadOwnerSigner()
	if err != nil {
		fmt.Printf("Failed to load owner key: %s\n", err.Error())
		return
	}
	operator.owner = owner

	initialState, _ := term.GetState(int(os.Stdin.Fd()))
	handleExit := func() {
		term.Restore(int(os.Stdin.Fd()), initialState)
		exec.Command("stty", "sane").Run()
	}

	options := append(getStyleOptions(),
		prompt.OptionPrefix(">>> "),

		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(buf *prompt.Buffer) {
				fmt.Println("Exiting Safe Probe.")
				handleExit()
				os.Exit(0)
			},
		}),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn:  func(buf *prompt.Buffer) {},
		}),
	)
	p := prompt.New(
		operator.Execute,
		operator.Complete,
		options...,
	)

	promptExitCh := make(chan struct{})
	go func() {
		p.Run()
		close(promptExitCh)
	}()

	select {
	case <-apps.Done():
		fmt.Println("Host connection closed.")
	case <-operator.Wait():
		fmt.Println("Operator exited.")
	case <-promptExitCh:
		fmt.Println("Prompt exited.")
	}
	handleExit()
	fmt.Println("Exiting Safe Probe.")
}

// loadConfig reads the environment and lets the first argument override the
// host URL.
func loadConfig(lg log.Logger, args []string) (sdk.Config, error) {
	if len(args) > 0 && args[0] != "" {
		if err := os.Setenv("SAFE_HOST_URL", args[0]); err != nil {
			return sdk.Config{}, err
		}
	}
	return sdk.LoadConfig(lg)
}

// loadOwnerSigner returns nil when SAFE_OWNER_KEY is unset.
func loadOwnerSigner() (*sign.EthereumSigner, error) {
	var conf probeConfig
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return nil, errors.Wrap(err, "failed to read SAFE_OWNER_KEY")
	}
	if conf.OwnerKey == "" {
		return nil, nil
	}
	signer, err := sign.NewEthereumSigner(conf.OwnerKey)
	if err != nil {
		return nil, errors.Wrap(err, "invalid SAFE_OWNER_KEY")
	}
	return signer, nil
}

func emptyCompleter(d prompt.Document) []prompt.Suggest {
	return []prompt.Suggest{}
}

func getStyleOptions() []prompt.Option {
	return []prompt.Option{
		prompt.OptionTitle("Safe Probe"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Cyan),

		prompt.OptionSuggestionTextColor(prompt.White),
		prompt.OptionSuggestionBGColor(prompt.DarkBlue),

		prompt.OptionDescriptionTextColor(prompt.Black),
		prompt.OptionDescriptionBGColor(prompt.Yellow),

		prompt.OptionSelectedSuggestionTextColor(prompt.Black),
		prompt.OptionSelectedSuggestionBGColor(prompt.Yellow),

		prompt.OptionSelectedDescriptionTextColor(prompt.White),
		prompt.OptionSelectedDescriptionBGColor(prompt.DarkBlue),

		prompt.OptionShowCompletionAtStart(),
	}
}
