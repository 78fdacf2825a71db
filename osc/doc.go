// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package osc encodes and decodes OpenSoundControl 1.0 packets.
//
//This implementation is based on the Open Sound Control 1.0 Specification (http://opensoundcontrol.org/spec-1_0.html).
//It does no I/O: callers hand it the bytes of a packet (for example one UDP datagram) and get back a
//Packet tree, or build a Packet tree and get back its encoding.
//
//Features
//
//- Supports OSC messages with the following TypeTags:
//
//	'i' (Int32)
//	'f' (Float32)
//	's' (String)
//	'b' (Blob)
//
//- Supports OSC bundles, including TimeTags and bundles nested in bundles.
//
//Packets
//
//An OSC packet consists of its contents, a contiguous block of binary data.
//The size of an OSC packet is always 32-bit aligned.
//
//OSC packets come in two flavors:
//
//OSC Messages: An OSC message consists of an OSC address pattern and zero or more OSC arguments.
//
//OSC Bundles: An OSC Bundle consists of an OSC Timetag, followed by zero or more OSC bundle elements.
//Each bundle element can be another OSC bundle (note this recursive definition: a bundle may contain bundles) or OSC message.
//
//Bundle elements carry no type marker. An element is treated as a nested bundle when its bytes start with the
//terminated string "#bundle" and a full bundle decode uses exactly the element's size; otherwise it is decoded as
//a message. A message addressed "#bundle" therefore round-trips as a message, but the format itself is ambiguous
//for pathological messages whose bytes also form a valid bundle.
//
//Borrowing
//
//DecodeMessage, DecodeBundle and ParsePacket return strings and blobs that point into the input slice, avoiding
//copies. The input must outlive the result and must not be modified while the result is in use. Use a Decoder
//with Copy set, or UnmarshalBinary, to get results that own their memory.
//
//Usage
//
//Encoding:
//  msg := osc.NewMessage("/ping", osc.Int32(1))
//  data := osc.EncodeMessage(msg)
//
//  bundle := osc.NewBundle(osc.Immediate, msg, osc.NewMessage("/synth/freq", osc.Float32(440)))
//  data = osc.EncodeBundle(bundle)
//
//Decoding:
//  p, err := osc.ParsePacket(data)
//  if err != nil {
//      return err
//  }
//  switch p := p.(type) {
//  case *osc.Message:
//      fmt.Println(p.Address, p.Arguments)
//  case *osc.Bundle:
//      fmt.Println(p.Timetag, len(p.Elements))
//  }
package osc
