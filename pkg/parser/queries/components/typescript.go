package components

// TSQueries finds native component and command registrations.
//
//	export default codegenNativeComponent<NativeProps>('RNTMyView', {
//	  interfaceOnly: true,
//	}) as HostComponent<NativeProps>;
//
//	export const Commands = codegenNativeCommands<NativeCommands>({
//	  supportedCommands: ['scrollTo'],
//	});
//
// Type and value arguments are read from the captured call node's
// type_arguments and arguments fields.
//
// Each query captures:
//   - @component.call / @commands.call - the call expression
//   - @component.callee / @commands.callee - the callee identifier
const TSQueries = `
(call_expression
  function: (identifier) @component.callee
  (#eq? @component.callee "codegenNativeComponent")) @component.call

(call_expression
  function: (identifier) @commands.callee
  (#eq? @commands.callee "codegenNativeCommands")) @commands.call
`
