/* Package main: stackgolf, a terse stack language for code golf

A program is a sequence of whitespace separated tokens, each run in turn
against one stack of values. There are six kinds of value:

	c(x)       Char, a single code point
	i(42)      Integer, signed 64-bit
	f(1.5)     Float, 64-bit
	s(text)    Str, immutable text
	[i(1),..]  Array, any mix of values
	{ .. }     Block, a stored list of operators

Tokens

A token runs to the next whitespace, except that a token starting with "
runs to the closing quote, and tokens starting with [ or { run to their
matching close bracket, so "a b" and [1 2] and {1 +} are single tokens.

Literals

Integers and floats are written as usual: 42 -7 1.5. A lone lower case letter
is a Char, other than the letters naming operators (t reads all input, l reads
one line). "text" is a Str. [a b c] is an Array whose elements are each run as
their own tiny program; [1 2 +] is the three element array of 1, 2, and the
result of running + on an empty stack, so it fails. {ops} is a Block.

Variables

The upper case letters A-Z name variable slots; a bare letter pushes its value
and :X stores the top of the stack into X without popping. Slots start as
A-F = 10..15, N = newline, S = space, X Y Z = 0 1 2, and everything else 0.

Stack operators

	;   drop                 _   dup
	\   swap                 @   rotate the third value to the top
	n$  copy the value n below the top (0$ is dup)
	(   decrement, or split off an array's first element
	)   increment, or split off an array's last element

Operators take their operands from the top of the stack, the first operand
being the deeper one. Most are overloaded on operand types: + adds numbers,
concatenates strings and arrays, and shifts chars; * repeats strings and
arrays, and folds an array with a block; % maps a block over an array or
string; , builds ranges, takes lengths, and filters with a block; $ with a
block sorts an array by key; w runs a block while the top is truthy; ~
unpacks arrays, runs blocks, and complements integers. See the operator tables
in binary.go, unary.go, and stackops.go.

Blocks run by fold, map, filter, and sort get a fresh stack holding just
their arguments; whatever they leave behind is the result, several values
being packed into an array. Only w and ~ run a block against the caller's stack.

Errors

Every failure is either a *SyntaxError, for a token that means nothing, or a
*RuntimeError carrying an Errno; errors.Is(err, StackEmpty) and friends test
for a class of failure.

Commands

	stackgolf FILE          run a program file, printing the final stack
	stackgolf -e PROGRAM    run program text
	stackgolf               run stdin line by line in one session
	stackgolf serve         run programs submitted over HTTP

*/
package main
