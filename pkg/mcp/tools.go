package mcp

import "github.com/mark3labs/mcp-go/mcp"

const (
	toolExtractProps  = "extract_props"
	toolScanDirectory = "scan_directory"
)

func extractPropsTool() mcp.Tool {
	return mcp.NewTool(
		toolExtractProps,
		mcp.WithDescription("Extract the codegen component schema from a native component spec written in TypeScript. "+
			"Returns the props, inherited prop groups and commands of every codegenNativeComponent call in the source."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("TypeScript source of the component spec file")),
		mcp.WithString("filename",
			mcp.Description("File name used for the module name and dialect (.ts or .tsx). Default: NativeComponent.ts")),
		mcp.WithString("component",
			mcp.Description("Return only this component (e.g. 'RNTSlider')")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

func scanDirectoryTool() mcp.Tool {
	return mcp.NewTool(
		toolScanDirectory,
		mcp.WithDescription("Scan a directory for native component specs and return the merged codegen schema with scan statistics."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to scan")),
		mcp.WithArray("include",
			mcp.Description("Include globs relative to path (default: **/*NativeComponent.ts, **/*NativeComponent.tsx)"),
			mcp.WithStringItems()),
		mcp.WithArray("exclude",
			mcp.Description("Additional exclude globs"),
			mcp.WithStringItems()),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}
