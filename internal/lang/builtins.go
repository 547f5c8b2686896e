package lang

// PythonBuiltins is the fixed set of names that the name-mapping builder
// never assigns a canonical slot to: the builtin callables, exception
// hierarchy, and constant singletons exposed by CPython's builtins module,
// plus __file__ and the conventional receiver names self and cls, which are
// not in that module. A name found here is always preserved verbatim in
// canonical code.
var PythonBuiltins = buildBuiltinSet()

func buildBuiltinSet() map[string]bool {
	names := []string{
		// constants
		"True", "False", "None", "NotImplemented", "Ellipsis", "__debug__",
		// functions
		"abs", "aiter", "anext", "all", "any", "ascii", "bin", "bool",
		"breakpoint", "bytearray", "bytes", "callable", "chr", "classmethod",
		"compile", "complex", "copyright", "credits", "delattr", "dict",
		"dir", "divmod", "enumerate", "eval", "exec", "exit", "filter",
		"float", "format", "frozenset", "getattr", "globals", "hasattr",
		"hash", "help", "hex", "id", "input", "int", "isinstance",
		"issubclass", "iter", "len", "license", "list", "locals", "map",
		"max", "memoryview", "min", "next", "object", "oct", "open", "ord",
		"pow", "print", "property", "quit", "range", "repr", "reversed",
		"round", "set", "setattr", "slice", "sorted", "staticmethod", "str",
		"sum", "super", "tuple", "type", "vars", "zip", "__import__",
		"__build_class__", "__name__", "__file__", "__doc__", "__loader__",
		"__spec__", "__package__", "self", "cls",
		// exceptions and warnings
		"BaseException", "BaseExceptionGroup", "GeneratorExit",
		"KeyboardInterrupt", "SystemExit", "Exception", "StopIteration",
		"StopAsyncIteration", "ArithmeticError", "FloatingPointError",
		"OverflowError", "ZeroDivisionError", "AssertionError",
		"AttributeError", "BufferError", "EOFError", "ExceptionGroup",
		"ImportError", "ModuleNotFoundError", "LookupError", "IndexError",
		"KeyError", "MemoryError", "NameError", "UnboundLocalError",
		"OSError", "BlockingIOError", "ChildProcessError",
		"ConnectionError", "BrokenPipeError", "ConnectionAbortedError",
		"ConnectionRefusedError", "ConnectionResetError", "FileExistsError",
		"FileNotFoundError", "InterruptedError", "IsADirectoryError",
		"NotADirectoryError", "PermissionError", "ProcessLookupError",
		"TimeoutError", "ReferenceError", "RuntimeError",
		"NotImplementedError", "RecursionError", "SyntaxError",
		"IndentationError", "TabError", "SystemError", "TypeError",
		"UnicodeError", "UnicodeDecodeError", "UnicodeEncodeError",
		"UnicodeTranslateError", "ValueError", "Warning", "BytesWarning",
		"DeprecationWarning", "EncodingWarning", "FutureWarning",
		"ImportWarning", "PendingDeprecationWarning", "ResourceWarning",
		"RuntimeWarning", "SyntaxWarning", "UnicodeWarning", "UserWarning",
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
