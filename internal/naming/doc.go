// Package naming derives canonical field names.
//
// A declared Go field name is first normalized to snake form, which is the
// lookup key accepted by generated Str2Col functions. The upper camel form
// of that key names the column variant and the field value variant.
//
// Key functions:
//   - Words, ToNormalIdent: declared name to words and snake form
//   - Canonicalize: declared name to CanonicalName
//   - Suggest: edit distance ranked "did you mean" candidates
package naming
