/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vllm-profiler/env-injector/cmd/webhook"
	"github.com/vllm-profiler/env-injector/pkg/logd"
	ctrl "sigs.k8s.io/controller-runtime"
)

var (
	log = logd.Get().WithName("main")
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "env-injector",
		RunE: rootCommand,
	}

	return cmd
}

func rootCommand(_ *cobra.Command, _ []string) error {
	return errors.New("env-injector binary must be called with one of the subcommands")
}

func main() {
	ctrl.SetLogger(log.Logger)

	cmd := newRootCommand()
	cmd.AddCommand(webhook.New())

	err := cmd.Execute()
	if err != nil {
		log.Info(err.Error())
		os.Exit(1)
	}
}
