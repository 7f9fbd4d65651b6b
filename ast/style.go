package ast

const baseStyle = `
* { box-sizing: border-box; max-width: 100%; white-space: pre-wrap; }
:root { --text-color: #2c3e50; --background-color: #ffffff; --link-color: #3498db; }
body { color: var(--text-color); line-height: 1.6; margin-left: 4rem; margin-right: 4rem;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; }
ul, ol { margin-top: 0; margin-bottom: 0; white-space: normal; }
a { color: var(--link-color); text-decoration: none; }
a:hover { text-decoration: underline; }
span { overflow-wrap: break-word; hyphens: auto; }
.h1size { font-size: 2em; }
.h2size { font-size: 1.5em; }
.h3size { font-size: 1.25em; }
.h4size { font-size: 1.125em; }
.h1size span, .h2size span, .h3size span, .h4size span { font-size: inherit !important; color: inherit !important; }
table { border: 1px solid #ccc; border-collapse: collapse; margin: 1em 0; white-space: normal; font-size: 14px; }
table td, table th { border: 1px solid #ccc; padding: 10px; overflow-wrap: break-word; }
table th { background-color: #f4f4f4; }
table tr:nth-child(even) { background-color: #f9f9f9; }
pre { background: #272822; color: #f8f8f2; padding: 1rem; border-radius: 8px; overflow-x: auto; }
code { font-family: "Cascadia Code", "JetBrains Mono", Menlo, Monaco, Consolas, monospace; }
`
