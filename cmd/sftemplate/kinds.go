package sftemplate

import (
	"fmt"
	"os"

	"github.com/jdcrensh/sftemplate/pkg/handlers"
	"github.com/jdcrensh/sftemplate/pkg/style"
	"github.com/jdcrensh/sftemplate/pkg/templates"
	"github.com/jdcrensh/sftemplate/pkg/types"
	"github.com/spf13/cobra"
)

// kindInfos describes every kind with a registered handler, in the order
// types.Kinds lists them
func kindInfos() []style.KindInfo {
	var out []style.KindInfo
	for _, k := range types.Kinds() {
		if !handlers.Has(k) {
			continue
		}
		info := style.KindInfo{Name: k.String(), Description: k.Description()}
		if ref, ok := templates.For(k); ok {
			info.Template = ref.Path
		}
		out = append(out, info)
	}
	return out
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: MsgKindsShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			md := style.KindsMarkdown(kindInfos())
			fmt.Fprint(cmd.OutOrStdout(), style.RenderMarkdown(md, style.DetectFormat(os.Stdout), 80))
		},
	}
}
